// Package convomem provides a high-level façade over the conversation memory
// engine: a shared, append-only message log exposed to each agent through
// independently configurable filtered, windowed views. Most applications
// interact with this package by:
//  1. Creating a ConvoMem via New() per workflow execution (optionally
//     attaching a durable store and logger)
//  2. Binding each scheduled job to a memory profile or explicit settings
//  3. Appending every produced message and fetching per-job context
//     immediately before each agent invocation
//
// The façade delegates to engine.Engine while keeping setup and usage
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable store
// implementation and a structured logger.
package convomem

import (
	"context"

	"github.com/hupe1980/convomem/core"
	"github.com/hupe1980/convomem/engine"
	"github.com/hupe1980/convomem/logging"
	"github.com/hupe1980/convomem/memory"
)

// Options configures the ConvoMem instance.
type Options struct {
	// EngineConfig tunes the view cache.
	EngineConfig engine.Config

	// Store is the optional durable persistence collaborator. Nil keeps the
	// conversation in-memory only.
	Store core.ConversationStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// ConvoMem is the high-level façade aggregating the underlying engine.
type ConvoMem struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new ConvoMem instance with optional overrides. One instance
// corresponds to one workflow execution and owns one conversation log.
func New(optFns ...func(o *Options)) *ConvoMem {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Store = opts.Store
		o.Logger = opts.Logger
	})

	return &ConvoMem{opts: opts, engine: e}
}

// AppendMessage records a produced message and returns its sequence number.
// An empty recipient addresses every participant.
func (m *ConvoMem) AppendMessage(sender, recipient, content string, isSystem bool, optFns ...func(*engine.AppendOptions)) uint64 {
	return m.engine.AppendMessage(sender, recipient, content, isSystem, optFns...)
}

// Bind creates the memory binding for a job instance with explicit settings.
func (m *ConvoMem) Bind(jobID, agentID string, settings core.Settings, timing memory.ApplyTiming) error {
	return m.engine.Bind(jobID, agentID, settings, timing)
}

// BindProfile creates the memory binding for a job instance from a named
// profile (full, focused, minimal, goldfish).
func (m *ConvoMem) BindProfile(jobID, agentID, profile string, timing memory.ApplyTiming) error {
	return m.engine.BindProfile(jobID, agentID, profile, timing)
}

// GetContext returns the ordered role/content context for a job's next
// agent invocation.
func (m *ConvoMem) GetContext(jobID, agentID string) ([]core.ContextMessage, error) {
	return m.engine.GetContext(jobID, agentID)
}

// GetView returns the raw message projection for a job's next invocation.
func (m *ConvoMem) GetView(jobID, agentID string) ([]core.Message, error) {
	return m.engine.GetView(jobID, agentID)
}

// Trigger fires the external recompute request of an upon-request binding.
func (m *ConvoMem) Trigger(jobID string) error {
	return m.engine.Trigger(jobID)
}

// Rebind swaps a running job's settings without touching the log.
func (m *ConvoMem) Rebind(jobID string, settings core.Settings) error {
	return m.engine.Rebind(jobID, settings)
}

// CompleteJob discards the binding of a finished job.
func (m *ConvoMem) CompleteJob(jobID string) {
	m.engine.CompleteJob(jobID)
}

// Conversation exposes the underlying log for snapshot reads and export.
func (m *ConvoMem) Conversation() *core.Conversation {
	return m.engine.Conversation()
}

// Restore seeds an empty conversation from the durable store, if attached.
func (m *ConvoMem) Restore(ctx context.Context) error {
	return m.engine.Restore(ctx)
}
