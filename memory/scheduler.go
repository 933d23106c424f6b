package memory

import (
	"fmt"
	"sync"

	"github.com/hupe1980/convomem/core"
	"github.com/hupe1980/convomem/logging"
)

// Scheduler owns the per-job memory bindings of one workflow execution and
// decides, immediately before each agent invocation, which settings the view
// must be built with. It is safe for concurrent use; each job's binding is
// independent, there are no cross-job locks.
type Scheduler struct {
	mu       sync.RWMutex
	bindings map[string]*JobBinding
	logger   logging.Logger
}

// SchedulerOption customizes a Scheduler at construction time.
type SchedulerOption func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(logger logging.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = logger }
}

// NewScheduler constructs an empty scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{bindings: make(map[string]*JobBinding), logger: logging.NoOpLogger{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Bind creates the memory binding for a job instance. Settings are validated
// here so invalid configurations fail before any agent call. A missing
// subject defaults to the agent's id. Rebinding an existing job id replaces
// its binding.
func (s *Scheduler) Bind(jobID, agentID string, settings core.Settings, timing ApplyTiming) error {
	if settings.View.SubjectID == "" {
		settings.View.SubjectID = agentID
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.bindings[jobID] = newJobBinding(jobID, agentID, settings, timing)
	s.mu.Unlock()

	s.logger.Debug("memory binding created job_id=%s agent_id=%s view=%s timing=%s", jobID, agentID, settings.View.Kind, timing)
	return nil
}

// BindProfile resolves a named memory profile and binds it. Unknown profile
// names surface ErrUnknownProfile.
func (s *Scheduler) BindProfile(jobID, agentID, profile string, timing ApplyTiming) error {
	p, err := core.ParseProfile(profile)
	if err != nil {
		return err
	}
	return s.Bind(jobID, agentID, p.Settings(agentID), timing)
}

// Binding returns the binding for a job id.
func (s *Scheduler) Binding(jobID string) (*JobBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bindings[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownJob, jobID)
	}
	return b, nil
}

// Advance runs one step of the job's apply-timing state machine and returns
// the effective settings for the upcoming invocation. The agent id must
// match the binding; identity and memory stay decoupled but a mismatch is a
// caller bug worth surfacing.
func (s *Scheduler) Advance(jobID, agentID string) (core.Settings, error) {
	b, err := s.Binding(jobID)
	if err != nil {
		return core.Settings{}, err
	}
	if agentID != "" && agentID != b.AgentID {
		return core.Settings{}, fmt.Errorf("job %q is bound to agent %q, not %q", jobID, b.AgentID, agentID)
	}
	return b.advance(), nil
}

// Trigger fires the external recompute request for an UponRequest binding.
// The next invocation of the job builds with the full narrowing applied.
func (s *Scheduler) Trigger(jobID string) error {
	b, err := s.Binding(jobID)
	if err != nil {
		return err
	}
	b.request()
	return nil
}

// Rebind replaces a running job's settings after validation. The log is
// untouched; only the projection policy changes.
func (s *Scheduler) Rebind(jobID string, settings core.Settings) error {
	b, err := s.Binding(jobID)
	if err != nil {
		return err
	}
	if settings.View.SubjectID == "" {
		settings.View.SubjectID = b.AgentID
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	b.rebind(settings)
	return nil
}

// Complete discards the binding of a finished job. Completing an unknown job
// is a no-op; any in-flight view computation is simply abandoned, no log
// mutation occurred so there is nothing to roll back.
func (s *Scheduler) Complete(jobID string) {
	s.mu.Lock()
	delete(s.bindings, jobID)
	s.mu.Unlock()
}
