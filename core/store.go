package core

import "context"

// ConversationStore is the durable persistence port for a conversation log.
// It is an external collaborator: the in-memory log stays authoritative and
// keeps working if the store fails. Implementations live in subpackages
// (see store/redis); select one at wiring time.
type ConversationStore interface {
	// Append persists a single message. Called asynchronously after the
	// in-memory append succeeded.
	Append(ctx context.Context, msg Message) error

	// Load returns all persisted messages in log order, used to seed an
	// empty conversation at process start.
	Load(ctx context.Context) ([]Message, error)
}
