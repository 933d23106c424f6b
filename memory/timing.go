package memory

import (
	"fmt"
	"strings"

	"github.com/hupe1980/convomem/core"
)

// ApplyTiming decides when a job's memory narrowing is (re)applied. It is
// evaluated by the scheduler immediately before each agent invocation; view
// content is always read from a live log snapshot, so timing only governs
// the filter/window policy, never freezes content.
type ApplyTiming int

const (
	// NoForget fixes the policy once at binding time. Every invocation
	// builds with the bound settings.
	NoForget ApplyTiming = iota
	// OnEveryTurn applies the narrowing at the start of every iteration.
	// The first iteration still sees the unwindowed accumulated context;
	// narrowing takes effect from the second iteration onward.
	OnEveryTurn
	// UponRequest applies the narrowing only when an explicit external
	// trigger fired, e.g. a decision point requesting a fresh, unbiased
	// evaluation. Untriggered invocations see the unwindowed view.
	UponRequest
)

// String returns the canonical configuration name of the timing.
func (t ApplyTiming) String() string {
	switch t {
	case NoForget:
		return "no_forget"
	case OnEveryTurn:
		return "on_every_turn"
	case UponRequest:
		return "upon_request"
	default:
		return "unknown"
	}
}

// ParseApplyTiming resolves a configuration string to an ApplyTiming.
func ParseApplyTiming(name string) (ApplyTiming, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "no_forget":
		return NoForget, nil
	case "on_every_turn":
		return OnEveryTurn, nil
	case "upon_request":
		return UponRequest, nil
	default:
		return 0, &core.ConfigError{Field: "apply_timing", Reason: fmt.Sprintf("unknown timing %q", name)}
	}
}
