package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/hupe1980/convomem/core"
	"github.com/hupe1980/convomem/logging"
	"github.com/hupe1980/convomem/memory"
	"github.com/hupe1980/convomem/view"
)

// Config defines tuning parameters for the engine's operational behavior.
//
// The view cache memoizes built projections keyed by job, settings and
// snapshot length. Any append changes the snapshot length, so cached entries
// go stale naturally and are never served for newer log states. Caching is a
// pure optimization; disabling it changes no observable behavior because
// view builds are deterministic.
type Config struct {
	// ViewCacheEnabled turns the projection cache on or off.
	ViewCacheEnabled bool

	// ViewCacheNumCounters sizes the cache's frequency sketch. Should be
	// roughly 10x the number of entries expected to be live.
	ViewCacheNumCounters int64

	// ViewCacheMaxCost bounds the cache size; cost is counted in cached
	// messages.
	ViewCacheMaxCost int64
}

// DefaultConfig provides production-ready default configuration values.
var DefaultConfig = Config{
	ViewCacheEnabled:     true,
	ViewCacheNumCounters: 10_000,
	ViewCacheMaxCost:     100_000,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Store is the optional durable persistence collaborator for the
	// conversation log. Nil means in-memory only.
	Store core.ConversationStore

	// Logger provides structured logging. Defaults to NoOp logger if nil.
	Logger logging.Logger
}

// WithConfig overrides the engine configuration.
func WithConfig(cfg Config) func(*Options) {
	return func(o *Options) { o.Config = cfg }
}

// WithStore attaches a durable conversation store.
func WithStore(store core.ConversationStore) func(*Options) {
	return func(o *Options) { o.Store = store }
}

// WithLogger sets the engine logger.
func WithLogger(logger logging.Logger) func(*Options) {
	return func(o *Options) { o.Logger = logger }
}

// Engine is the execution-scoped coordinator of one workflow's conversation
// memory. It owns the conversation log and the memory scheduler, and exposes
// the two operations the surrounding orchestration engine consumes: append a
// produced message, and fetch the context for a job's next agent invocation.
//
// The engine dispatches no work and calls no models; it only turns an
// append-only log into per-job context projections.
type Engine struct {
	conv   *core.Conversation
	sched  *memory.Scheduler
	cache  *ristretto.Cache
	logger logging.Logger
	// rich is set when the configured logger is a ConvoMemLogger, enabling
	// the structured domain helpers instead of formatted debug lines.
	rich *logging.ConvoMemLogger
}

// New constructs an engine with safe in-memory defaults.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var convOpts []core.ConversationOption
	if opts.Store != nil {
		convOpts = append(convOpts, core.WithStore(opts.Store))
	}
	convOpts = append(convOpts, core.WithLogger(opts.Logger))

	e := &Engine{
		conv:   core.NewConversation(convOpts...),
		sched:  memory.NewScheduler(memory.WithLogger(opts.Logger)),
		logger: opts.Logger,
	}
	if cl, ok := opts.Logger.(*logging.ConvoMemLogger); ok {
		e.rich = cl.WithComponent("engine")
	}

	if opts.Config.ViewCacheEnabled {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: opts.Config.ViewCacheNumCounters,
			MaxCost:     opts.Config.ViewCacheMaxCost,
			BufferItems: 64,
		})
		if err != nil {
			opts.Logger.Warn("view cache disabled error=%v", err)
		} else {
			e.cache = cache
		}
	}

	return e
}

// AppendOptions carries optional metadata for an appended message.
type AppendOptions struct {
	// TurnIndex is the orchestration turn that produced the message.
	TurnIndex uint32
}

// WithTurnIndex sets the producing turn on the appended message.
func WithTurnIndex(turn uint32) func(*AppendOptions) {
	return func(o *AppendOptions) { o.TurnIndex = turn }
}

// AppendMessage records a produced message and returns its assigned sequence
// number. An empty recipient addresses every participant. Called by the
// orchestration engine after every agent turn or system event; appends are
// serialized internally so concurrent callers still observe a total order.
func (e *Engine) AppendMessage(sender, recipient, content string, isSystem bool, optFns ...func(*AppendOptions)) uint64 {
	var opts AppendOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	m := core.NewMessage(sender, recipient, content)
	m.IsSystem = isSystem
	m.TurnIndex = opts.TurnIndex

	seq := e.conv.Append(m)
	if e.rich != nil {
		e.rich.LogAppend(seq, sender, isSystem)
	} else {
		e.logger.Debug("message appended seq=%d sender=%s system=%t", seq, sender, isSystem)
	}
	return seq
}

// Bind creates the memory binding for a job instance with explicit settings.
func (e *Engine) Bind(jobID, agentID string, settings core.Settings, timing memory.ApplyTiming) error {
	return e.sched.Bind(jobID, agentID, settings, timing)
}

// BindProfile creates the memory binding for a job instance from a named
// profile (full, focused, minimal, goldfish).
func (e *Engine) BindProfile(jobID, agentID, profile string, timing memory.ApplyTiming) error {
	return e.sched.BindProfile(jobID, agentID, profile, timing)
}

// Trigger fires the external recompute request of an upon-request binding.
func (e *Engine) Trigger(jobID string) error {
	return e.sched.Trigger(jobID)
}

// Rebind swaps a running job's settings; the log is untouched.
func (e *Engine) Rebind(jobID string, settings core.Settings) error {
	return e.sched.Rebind(jobID, settings)
}

// CompleteJob discards the binding of a finished job.
func (e *Engine) CompleteJob(jobID string) {
	e.sched.Complete(jobID)
}

// GetView returns the raw message projection for a job's next invocation,
// for callers that need addressing metadata. The projection is computed over
// a snapshot bound fixed at call time, so concurrent appends neither block
// nor corrupt it.
func (e *Engine) GetView(jobID, agentID string) ([]core.Message, error) {
	settings, err := e.sched.Advance(jobID, agentID)
	if err != nil {
		return nil, err
	}

	n := e.conv.Len()
	key := fmt.Sprintf("%s@%d@%s", jobID, n, settings.CacheKey())
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if msgs, ok := cached.([]core.Message); ok {
				return msgs, nil
			}
		}
	}

	start := time.Now()
	snapshot := e.conv.Read(1, n)
	msgs := view.Build(snapshot, settings)
	if e.rich != nil {
		e.rich.LogViewBuild(jobID, settings.View.Kind.String(), len(snapshot), len(msgs), time.Since(start))
	} else {
		e.logger.Debug("view built job_id=%s view_kind=%s snapshot_size=%d view_size=%d duration=%s",
			jobID, settings.View.Kind, len(snapshot), len(msgs), time.Since(start))
	}

	if e.cache != nil {
		e.cache.Set(key, msgs, int64(len(msgs))+1)
	}

	return msgs, nil
}

// GetContext returns the ordered role/content context for a job's next
// agent invocation. Empty results (empty log, absent subject) are valid.
func (e *Engine) GetContext(jobID, agentID string) ([]core.ContextMessage, error) {
	b, err := e.sched.Binding(jobID)
	if err != nil {
		return nil, err
	}
	msgs, err := e.GetView(jobID, agentID)
	if err != nil {
		return nil, err
	}
	return core.ToContext(msgs, b.Settings().View.SubjectID), nil
}

// Conversation exposes the underlying log for snapshot reads and export.
func (e *Engine) Conversation() *core.Conversation {
	return e.conv
}

// Scheduler exposes the memory scheduler for binding introspection.
func (e *Engine) Scheduler() *memory.Scheduler {
	return e.sched
}

// Restore seeds an empty conversation from the durable store, if one is
// attached. Intended for process start before any appends.
func (e *Engine) Restore(ctx context.Context) error {
	if e.rich != nil {
		defer e.rich.StartTimer("restore")()
	}
	return e.conv.Restore(ctx)
}

// Wait flushes pending cache writes. Exposed for deterministic tests.
func (e *Engine) Wait() {
	if e.cache != nil {
		e.cache.Wait()
	}
}
