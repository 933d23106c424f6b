// Package openai converts ConvoMem context projections into OpenAI Chat
// Completions messages. The node handler owns the actual API call.
package openai

import (
	"github.com/hupe1980/convomem/core"
	"github.com/openai/openai-go"
)

// BuildMessages converts an ordered context into chat completion messages,
// preserving order. Unknown roles are treated as user input.
func BuildMessages(ctx []core.ContextMessage) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(ctx))
	for _, c := range ctx {
		if c.Content == "" {
			continue
		}
		switch c.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(c.Content))
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(c.Content))
		default:
			messages = append(messages, openai.UserMessage(c.Content))
		}
	}
	return messages
}

// BuildParams assembles ChatCompletionNewParams from a context, ready for
// the caller to set tools and sampling options on.
func BuildParams(ctx []core.ContextMessage, model openai.ChatModel) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:    model,
		Messages: BuildMessages(ctx),
	}
}
