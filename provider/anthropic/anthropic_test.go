package anthropic

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/convomem/core"
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

	messages, system := BuildMessages(ctx)

	require.Len(t, system, 1)
	assert.Equal(t, "you are a judge", system[0].Text)

	require.Len(t, messages, 2, "empty contents are skipped")
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, messages[1].Role)
}

func TestBuildParams(t *testing.T) {
	ctx := []core.ContextMessage{
		{Role: core.RoleSystem, Content: "rules"},
		{Role: core.RoleUser, Content: "question"},
	}

	params := BuildParams(ctx, anthropic.ModelClaude3_5Sonnet20241022, 1024)
	assert.Len(t, params.Messages, 1)
	assert.Len(t, params.System, 1)
	assert.Equal(t, int64(1024), params.MaxTokens)
}

func TestBuildMessages_Empty(t *testing.T) {
	messages, system := BuildMessages(nil)
	assert.Empty(t, messages)
	assert.Empty(t, system)
}
