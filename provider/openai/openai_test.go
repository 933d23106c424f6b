package openai

import (
	"testing"

	"github.com/hupe1980/convomem/core"
	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessages(t *testing.T) {
	ctx := []core.ContextMessage{
		{Role: core.RoleSystem, Content: "you are a judge"},
		{Role: core.RoleUser, Content: "argument"},
		{Role: core.RoleAssistant, Content: "verdict"},
		{Role: core.RoleUser, Content: ""},
	}

	messages := BuildMessages(ctx)
	require.Len(t, messages, 3, "empty contents are skipped")

	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)
	assert.NotNil(t, messages[2].OfAssistant)
}

func TestBuildParams(t *testing.T) {
	ctx := []core.ContextMessage{
		{Role: core.RoleUser, Content: "question"},
	}

	params := BuildParams(ctx, openai.ChatModelGPT4oMini)
	assert.Equal(t, openai.ChatModelGPT4oMini, params.Model)
	assert.Len(t, params.Messages, 1)
}

func TestBuildMessages_Empty(t *testing.T) {
	assert.Empty(t, BuildMessages(nil))
}
