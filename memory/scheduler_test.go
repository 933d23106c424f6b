package memory

import (
	"testing"

	"github.com/hupe1980/convomem/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldfish(subject string) core.Settings {
	return core.ProfileGoldfish.Settings(subject)
}

func TestScheduler_BindValidatesBeforeAnyAgentCall(t *testing.T) {
	s := NewScheduler()

	bad := goldfish("x")
	bad.MaxUnits = -3
	err := s.Bind("job-1", "x", bad, NoForget)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))

	// The failed bind must not leave a binding behind.
	_, err = s.Binding("job-1")
	assert.ErrorIs(t, err, core.ErrUnknownJob)
}

func TestScheduler_BindProfileUnknownName(t *testing.T) {
	s := NewScheduler()
	err := s.BindProfile("job-1", "x", "elephant", NoForget)
	assert.ErrorIs(t, err, core.ErrUnknownProfile)
}

func TestScheduler_BindDefaultsSubjectToAgent(t *testing.T) {
	s := NewScheduler()
	set := core.Settings{View: core.ViewSpec{Kind: core.AllInvolved}, Unit: core.UnitMessages}
	require.NoError(t, s.Bind("job-1", "agent-7", set, NoForget))

	b, err := s.Binding("job-1")
	require.NoError(t, err)
	assert.Equal(t, "agent-7", b.Settings().View.SubjectID)
	assert.Equal(t, Bound, b.State())
}

func TestScheduler_AdvanceUnknownJob(t *testing.T) {
	s := NewScheduler()
	_, err := s.Advance("nope", "x")
	assert.ErrorIs(t, err, core.ErrUnknownJob)
}

func TestScheduler_AdvanceAgentMismatch(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Bind("job-1", "x", goldfish("x"), NoForget))
	_, err := s.Advance("job-1", "y")
	assert.Error(t, err)
}

func TestScheduler_NoForgetKeepsPolicyFixed(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Bind("job-1", "x", goldfish("x"), NoForget))

	for i := 0; i < 3; i++ {
		got, err := s.Advance("job-1", "x")
		require.NoError(t, err)
		assert.Equal(t, goldfish("x"), got)
	}

	b, _ := s.Binding("job-1")
	assert.Equal(t, Applied, b.State())
	assert.Equal(t, 3, b.Iteration())
}

func TestScheduler_OnEveryTurnNarrowsFromSecondIteration(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Bind("job-1", "x", goldfish("x"), OnEveryTurn))

	first, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, first.MaxUnits, "first iteration sees the unwindowed context")
	assert.Equal(t, core.ConversationPairs, first.View.Kind, "filter applies from the start")

	second, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, goldfish("x"), second)
}

func TestScheduler_UponRequestAppliesOnlyOnTrigger(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Bind("job-1", "x", goldfish("x"), UponRequest))

	dormant, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, dormant.MaxUnits, "untriggered invocation stays unwindowed")

	require.NoError(t, s.Trigger("job-1"))

	narrowed, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, goldfish("x"), narrowed)

	// The trigger is consumed; the next invocation is dormant again.
	after, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, after.MaxUnits)
}

func TestScheduler_TriggerUnknownJob(t *testing.T) {
	s := NewScheduler()
	assert.ErrorIs(t, s.Trigger("nope"), core.ErrUnknownJob)
}

func TestScheduler_Rebind(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Bind("job-1", "x", core.ProfileFull.Settings("x"), NoForget))

	require.NoError(t, s.Rebind("job-1", goldfish("x")))
	got, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	assert.Equal(t, goldfish("x"), got)

	bad := goldfish("x")
	bad.MaxUnits = -1
	err = s.Rebind("job-1", bad)
	assert.True(t, core.IsConfigError(err))
}

func TestScheduler_IndependentBindingsPerJobSameAgent(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.BindProfile("job-1", "x", "full", NoForget))
	require.NoError(t, s.BindProfile("job-2", "x", "goldfish", NoForget))

	full, err := s.Advance("job-1", "x")
	require.NoError(t, err)
	narrow, err := s.Advance("job-2", "x")
	require.NoError(t, err)

	assert.Equal(t, 0, full.MaxUnits)
	assert.Equal(t, 2, narrow.MaxUnits)
}

func TestScheduler_Complete(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.BindProfile("job-1", "x", "full", NoForget))
	s.Complete("job-1")

	_, err := s.Advance("job-1", "x")
	assert.ErrorIs(t, err, core.ErrUnknownJob)

	// Completing an unknown job is a no-op.
	s.Complete("never-bound")
}

func TestParseApplyTiming(t *testing.T) {
	for name, want := range map[string]ApplyTiming{
		"no_forget":     NoForget,
		"ON_EVERY_TURN": OnEveryTurn,
		"upon_request":  UponRequest,
	} {
		got, err := ParseApplyTiming(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseApplyTiming("sometimes")
	assert.True(t, core.IsConfigError(err))
}

func TestBindingStateString(t *testing.T) {
	assert.Equal(t, "unbound", Unbound.String())
	assert.Equal(t, "bound", Bound.String())
	assert.Equal(t, "applied", Applied.String())
}

func TestApplyTimingString(t *testing.T) {
	assert.Equal(t, "no_forget", NoForget.String())
	assert.Equal(t, "on_every_turn", OnEveryTurn.String())
	assert.Equal(t, "upon_request", UponRequest.String())
	assert.Equal(t, "unknown", ApplyTiming(99).String())
}
