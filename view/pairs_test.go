package view

import (
	"testing"

	"github.com/hupe1980/convomem/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs_CompleteExchanges(t *testing.T) {
	msgs := []core.Message{
		core.NewMessage("B", "A", "q1"),
		core.NewMessage("A", "B", "a1"),
		core.NewMessage("B", "A", "q2"),
		core.NewMessage("A", "B", "a2"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 2)
	for i, p := range pairs {
		assert.True(t, p.Complete, "pair %d should be complete", i)
		assert.Len(t, p.Messages, 2)
		assert.False(t, p.Ambiguous)
	}
	assert.Equal(t, "q1", pairs[0].Messages[0].Content)
	assert.Equal(t, "a1", pairs[0].Messages[1].Content)
}

func TestPairs_TrailingUnansweredRequestKept(t *testing.T) {
	msgs := []core.Message{
		core.NewMessage("B", "A", "q1"),
		core.NewMessage("A", "B", "a1"),
		core.NewMessage("B", "A", "q2"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 2)
	assert.True(t, pairs[0].Complete)
	assert.False(t, pairs[1].Complete)
	assert.Equal(t, "q2", pairs[1].Messages[0].Content)
}

func TestPairs_AmbiguousInterleavingFlagged(t *testing.T) {
	// Two inbound messages before the subject replies: the first request is
	// closed incomplete and flagged, the reply pairs with the second.
	msgs := []core.Message{
		core.NewMessage("B", "A", "q-from-b"),
		core.NewMessage("C", "A", "q-from-c"),
		core.NewMessage("A", "C", "answer"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 2)

	assert.False(t, pairs[0].Complete)
	assert.True(t, pairs[0].Ambiguous)
	assert.Equal(t, "q-from-b", pairs[0].Messages[0].Content)

	assert.True(t, pairs[1].Complete)
	assert.Equal(t, []string{"q-from-c", "answer"}, contents(pairs[1].Messages))
}

func TestPairs_SubjectInitiatedMessageIsOwnUnit(t *testing.T) {
	msgs := []core.Message{
		core.NewMessage("A", "B", "hello"),
		core.NewMessage("B", "A", "q1"),
		core.NewMessage("A", "B", "a1"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 2)
	assert.False(t, pairs[0].Complete)
	assert.Equal(t, []string{"hello"}, contents(pairs[0].Messages))
	assert.True(t, pairs[1].Complete)
}

func TestPairs_BroadcastOpensPair(t *testing.T) {
	msgs := []core.Message{
		core.NewBroadcastMessage("B", "question for everyone"),
		core.NewMessage("A", "B", "my answer"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].Complete)
	assert.Equal(t, []string{"question for everyone", "my answer"}, contents(pairs[0].Messages))
}

func TestPairs_ThirdPartyTrafficSkipped(t *testing.T) {
	msgs := []core.Message{
		core.NewMessage("B", "C", "none of A's business"),
		core.NewMessage("B", "A", "q1"),
		core.NewMessage("A", "B", "a1"),
	}

	pairs := Pairs(msgs, "A")
	require.Len(t, pairs, 1)
	assert.Equal(t, []string{"q1", "a1"}, contents(pairs[0].Messages))
}

func TestFlatten(t *testing.T) {
	msgs := []core.Message{
		core.NewMessage("B", "A", "q1"),
		core.NewMessage("A", "B", "a1"),
		core.NewMessage("B", "A", "q2"),
	}
	flat := Flatten(Pairs(msgs, "A"))
	assert.Equal(t, []string{"q1", "a1", "q2"}, contents(flat))
}
