// Package anthropic converts ConvoMem context projections into the message
// shape of the Anthropic Messages API. System entries become system blocks,
// everything else becomes user/assistant messages; the node handler owns the
// actual API call.
package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/convomem/core"
)

// BuildMessages converts an ordered context into Anthropic message params
// plus the extracted system blocks. System entries are pulled out because
// the Messages API carries them in a dedicated request field.
func BuildMessages(ctx []core.ContextMessage) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var (
		messages     []anthropic.MessageParam
		systemBlocks []anthropic.TextBlockParam
	)

	for _, c := range ctx {
		if c.Content == "" {
			continue
		}
		switch c.Role {
		case core.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: c.Content})
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(c.Content)))
		default:
			// Treat unknown roles as user input.
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(c.Content)))
		}
	}

	return messages, systemBlocks
}

// BuildParams assembles a complete MessageNewParams from a context, ready
// for the caller to set model, tools and sampling options on.
func BuildParams(ctx []core.ContextMessage, model anthropic.Model, maxTokens int64) anthropic.MessageNewParams {
	messages, systemBlocks := BuildMessages(ctx)
	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	return params
}
