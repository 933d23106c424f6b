package testutil

import (
	"fmt"

	"github.com/hupe1980/convomem/core"
)

// MessageBuilder provides a fluent helper for constructing messages in tests.
// Example:
//
//	m := NewMessageBuilder().From("alice").To("bob").Text("hi").Turn(2).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageBuilder struct {
	sender    string
	recipient string
	content   string
	system    bool
	turn      uint32
}

// NewMessageBuilder creates a builder with default sender "agent".
func NewMessageBuilder() *MessageBuilder { return &MessageBuilder{sender: "agent"} }

// From sets the sender id (chainable).
func (b *MessageBuilder) From(sender string) *MessageBuilder { b.sender = sender; return b }

// To sets the recipient id (chainable). Leaving it unset yields a broadcast.
func (b *MessageBuilder) To(recipient string) *MessageBuilder { b.recipient = recipient; return b }

// Text sets the message content (chainable).
func (b *MessageBuilder) Text(content string) *MessageBuilder { b.content = content; return b }

// System marks the message as system-authored (chainable).
func (b *MessageBuilder) System() *MessageBuilder {
	b.system = true
	b.sender = core.SystemSender
	return b
}

// Turn sets the producing turn index (chainable).
func (b *MessageBuilder) Turn(turn uint32) *MessageBuilder { b.turn = turn; return b }

// Build constructs the message. Seq stays zero until appended.
func (b *MessageBuilder) Build() core.Message {
	m := core.NewMessage(b.sender, b.recipient, b.content)
	m.IsSystem = b.system
	m.TurnIndex = b.turn
	return m
}

// Script appends a scripted conversation to a log, numbering exchange
// contents for easy assertions.
type Script struct {
	Conv *core.Conversation
}

// NewScript wraps a conversation for scripted appends.
func NewScript(conv *core.Conversation) *Script { return &Script{Conv: conv} }

// System appends a system broadcast.
func (s *Script) System(content string) *Script {
	s.Conv.Append(core.NewSystemMessage(content))
	return s
}

// Say appends a direct message.
func (s *Script) Say(from, to, content string) *Script {
	s.Conv.Append(core.NewMessage(from, to, content))
	return s
}

// Broadcast appends a broadcast message.
func (s *Script) Broadcast(from, content string) *Script {
	s.Conv.Append(core.NewBroadcastMessage(from, content))
	return s
}

// Exchange appends a request/response pair: from asks, to answers. The
// exchange number is embedded in both contents.
func (s *Script) Exchange(from, to string, n int) *Script {
	s.Say(from, to, fmt.Sprintf("request %d", n))
	s.Say(to, from, fmt.Sprintf("response %d", n))
	return s
}
