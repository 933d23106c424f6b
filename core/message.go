package core

import (
	"time"

	"github.com/google/uuid"
)

// Roles used when projecting messages into model-facing context entries.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemSender is the conventional sender id for system-authored messages.
const SystemSender = "system"

// Message is a single entry in a conversation log. After being appended it
// must be treated as immutable. It captures:
//   - Total ordering (Seq, assigned by the conversation on append)
//   - Correlation (ID)
//   - Addressing (Sender, Recipient; an empty Recipient means broadcast)
//   - Opaque payload (Content)
//   - System flag and orchestration turn index
//   - High precision UTC timestamp
type Message struct {
	Seq       uint64    `json:"seq"`
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	Content   string    `json:"content"`
	IsSystem  bool      `json:"is_system,omitempty"`
	TurnIndex uint32    `json:"turn_index,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message from sender to recipient. Seq is zero until
// the message is appended to a Conversation.
func NewMessage(sender, recipient, content string) Message {
	return Message{
		ID:        NewID(),
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewBroadcastMessage creates a message addressed to every participant.
func NewBroadcastMessage(sender, content string) Message {
	return NewMessage(sender, "", content)
}

// NewSystemMessage creates a system-authored broadcast message.
func NewSystemMessage(content string) Message {
	m := NewBroadcastMessage(SystemSender, content)
	m.IsSystem = true
	return m
}

// NewID generates a new unique identifier for messages.
func NewID() string { return uuid.NewString() }

// IsBroadcast reports whether the message is addressed to all participants.
func (m Message) IsBroadcast() bool { return m.Recipient == "" }

// Involves reports whether the subject is sender, recipient, or a broadcast
// audience member of this message.
func (m Message) Involves(subjectID string) bool {
	return m.Sender == subjectID || m.Recipient == subjectID || m.IsBroadcast()
}

// AddressedTo reports whether the message is directed at the subject, either
// explicitly or as a broadcast from another participant.
func (m Message) AddressedTo(subjectID string) bool {
	if m.Recipient == subjectID {
		return true
	}
	return m.IsBroadcast() && m.Sender != subjectID
}

// ContextMessage is a single role/content entry of the ordered context handed
// to a model invocation. It is a projection of a Message from one subject's
// perspective and is never stored.
type ContextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RoleFor maps a message to the conversational role it plays from the
// subject's perspective: system instructions stay "system", the subject's own
// messages become "assistant", everything else is "user" input.
func RoleFor(m Message, subjectID string) string {
	switch {
	case m.IsSystem:
		return RoleSystem
	case m.Sender == subjectID:
		return RoleAssistant
	default:
		return RoleUser
	}
}

// ToContext projects an ordered message sequence into role/content entries
// from the subject's perspective, preserving order.
func ToContext(msgs []Message, subjectID string) []ContextMessage {
	out := make([]ContextMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ContextMessage{Role: RoleFor(m, subjectID), Content: m.Content})
	}
	return out
}
