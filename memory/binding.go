package memory

import (
	"sync"

	"github.com/hupe1980/convomem/core"
)

// BindingState tracks a binding's progress through its lifecycle.
type BindingState int

const (
	// Unbound means no settings have been resolved yet.
	Unbound BindingState = iota
	// Bound means settings are resolved but no view has been computed.
	Bound
	// Applied means at least one view has been computed for the binding.
	Applied
)

// String returns a readable state name.
func (s BindingState) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Applied:
		return "applied"
	default:
		return "unknown"
	}
}

// JobBinding associates one running job instance with concrete memory
// settings, independent of the agent's identity. Two jobs referring to the
// same agent may carry different bindings; the agent itself holds no memory
// state. A binding is created when the job is scheduled and discarded at
// job completion. It references, but never copies, log data.
type JobBinding struct {
	JobID   string
	AgentID string

	mu        sync.Mutex
	settings  core.Settings
	timing    ApplyTiming
	state     BindingState
	iteration int
	requested bool
}

// newJobBinding constructs a bound binding with validated settings.
func newJobBinding(jobID, agentID string, settings core.Settings, timing ApplyTiming) *JobBinding {
	return &JobBinding{
		JobID:    jobID,
		AgentID:  agentID,
		settings: settings,
		timing:   timing,
		state:    Bound,
	}
}

// Settings returns the bound memory settings.
func (b *JobBinding) Settings() core.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// Timing returns the bound apply timing.
func (b *JobBinding) Timing() ApplyTiming {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timing
}

// State returns the current lifecycle state.
func (b *JobBinding) State() BindingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Iteration returns how many invocations the binding has served.
func (b *JobBinding) Iteration() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.iteration
}

// request marks a pending external trigger for UponRequest timing.
func (b *JobBinding) request() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requested = true
}

// rebind swaps the settings mid-job, e.g. a decision point dropping an agent
// to goldfish memory without touching the log.
func (b *JobBinding) rebind(settings core.Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = settings
}

// advance moves the binding through one invocation of its state machine and
// returns the settings the view must be built with for this invocation.
// Timing conditionals live here and nowhere else.
func (b *JobBinding) advance() core.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.iteration++
	b.state = Applied

	switch b.timing {
	case OnEveryTurn:
		if b.iteration == 1 {
			return b.settings.Windowless()
		}
		return b.settings
	case UponRequest:
		if b.requested {
			b.requested = false
			return b.settings
		}
		return b.settings.Windowless()
	default: // NoForget
		return b.settings
	}
}
