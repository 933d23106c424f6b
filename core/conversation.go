package core

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/convomem/logging"
)

// Conversation is the append-only ordered message log shared by all
// participants of one workflow execution. It is the single source of truth:
// messages are never mutated or deleted, the log grows only by append.
//
// Contract:
//   - Append is the only mutating operation and is serialized through the
//     internal write lock, so sequence numbers are strictly increasing with
//     no gaps even under concurrent callers
//   - Reads operate on a fixed upper bound (Len) and return defensive copies,
//     so view construction never blocks appends and vice versa
//   - An optional ConversationStore receives fire-and-forget copies of every
//     appended message; on the first store failure the conversation degrades
//     to in-memory only operation with a logged warning
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
	store    ConversationStore
	logger   logging.Logger
}

// ConversationOption customizes a Conversation at construction time.
type ConversationOption func(*Conversation)

// WithStore attaches a durable store collaborator. Writes to it are
// asynchronous; the in-memory order stays authoritative.
func WithStore(store ConversationStore) ConversationOption {
	return func(c *Conversation) { c.store = store }
}

// WithLogger sets the logger used for store degradation warnings.
func WithLogger(logger logging.Logger) ConversationOption {
	return func(c *Conversation) { c.logger = logger }
}

// NewConversation constructs an empty conversation log.
func NewConversation(opts ...ConversationOption) *Conversation {
	c := &Conversation{logger: logging.NoOpLogger{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Append assigns the next sequence number to the message, stores it and
// returns the assigned seq. Missing ID/Timestamp fields are filled in.
// Append never fails; a durable store error only detaches the store.
func (c *Conversation) Append(m Message) uint64 {
	c.mu.Lock()
	m.Seq = uint64(len(c.messages)) + 1
	if m.ID == "" {
		m.ID = NewID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	c.messages = append(c.messages, m)
	store := c.store
	c.mu.Unlock()

	if store != nil {
		go c.persist(store, m)
	}

	return m.Seq
}

// persist forwards a message to the durable store. The first failure detaches
// the store; the conversation keeps serving reads and writes from memory.
func (c *Conversation) persist(store ConversationStore, m Message) {
	if err := store.Append(context.Background(), m); err != nil {
		c.mu.Lock()
		c.store = nil
		c.mu.Unlock()
		if cl, ok := c.logger.(*logging.ConvoMemLogger); ok {
			cl.LogStoreDegraded(err)
		} else {
			c.logger.Warn("durable store failed, conversation degrades to in-memory only error=%v seq=%d", err, m.Seq)
		}
	}
}

// Len returns the current log length, which equals the highest assigned
// sequence number. Use it to fix a consistent upper bound for a view build.
func (c *Conversation) Len() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint64(len(c.messages))
}

// Read returns copies of the messages with from <= Seq <= to. Out-of-range
// bounds are clamped; an empty range yields an empty slice. Reads never block
// on appends beyond the requested bound.
func (c *Conversation) Read(from, to uint64) []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := uint64(len(c.messages))
	if from < 1 {
		from = 1
	}
	if to > n {
		to = n
	}
	if n == 0 || from > to {
		return []Message{}
	}
	out := make([]Message, to-from+1)
	copy(out, c.messages[from-1:to])
	return out
}

// Snapshot returns a copy of the complete log at its current length.
func (c *Conversation) Snapshot() []Message {
	return c.Read(1, c.Len())
}

// Restore seeds an empty conversation from the attached durable store. It is
// intended for process start; restoring into a non-empty log is an error.
func (c *Conversation) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	if len(c.messages) != 0 {
		return ErrAlreadyPopulated
	}
	msgs, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	// Persists run concurrently, so store order may trail Seq order.
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Seq < msgs[j].Seq })
	c.messages = append(c.messages, msgs...)
	return nil
}
