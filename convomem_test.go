package convomem

import (
	"testing"

	"github.com/hupe1980/convomem/core"
	"github.com/hupe1980/convomem/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvoMem_EndToEnd(t *testing.T) {
	cm := New()

	require.NoError(t, cm.BindProfile("writer-job", "writer", "full", memory.NoForget))
	require.NoError(t, cm.BindProfile("critic-job", "critic", "minimal", memory.NoForget))

	cm.AppendMessage(core.SystemSender, "", "collaborate on a story", true)
	cm.AppendMessage("writer", "critic", "here is my draft", false)
	cm.AppendMessage("critic", "writer", "tighten the opening", false)

	writerCtx, err := cm.GetContext("writer-job", "writer")
	require.NoError(t, err)
	assert.Len(t, writerCtx, 3)
	assert.Equal(t, core.RoleSystem, writerCtx[0].Role)

	// The critic's minimal profile shows system messages plus its own.
	criticCtx, err := cm.GetContext("critic-job", "critic")
	require.NoError(t, err)
	require.Len(t, criticCtx, 2)
	assert.Equal(t, "collaborate on a story", criticCtx[0].Content)
	assert.Equal(t, "tighten the opening", criticCtx[1].Content)

	// Forgetting narrows views only; the log is untouched.
	assert.Equal(t, uint64(3), cm.Conversation().Len())

	cm.CompleteJob("critic-job")
	_, err = cm.GetContext("critic-job", "critic")
	assert.ErrorIs(t, err, core.ErrUnknownJob)
}

func TestConvoMem_ExplicitSettingsAndRebind(t *testing.T) {
	cm := New()

	settings := core.Settings{
		View:           core.ViewSpec{Kind: core.SentToMe, SubjectID: "a"},
		MaxUnits:       1,
		Unit:           core.UnitMessages,
		PreserveSystem: true,
	}
	require.NoError(t, cm.Bind("job", "a", settings, memory.NoForget))

	cm.AppendMessage("b", "a", "first", false)
	cm.AppendMessage("b", "a", "second", false)

	ctx, err := cm.GetContext("job", "a")
	require.NoError(t, err)
	require.Len(t, ctx, 1)
	assert.Equal(t, "second", ctx[0].Content)

	require.NoError(t, cm.Rebind("job", core.ProfileFull.Settings("a")))
	ctx, err = cm.GetContext("job", "a")
	require.NoError(t, err)
	assert.Len(t, ctx, 2)
}
