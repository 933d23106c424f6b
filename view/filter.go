package view

import (
	"fmt"

	"github.com/hupe1980/convomem/core"
)

// Matches reports whether a single message is visible under the given view
// spec. ConversationPairs uses the involvement predicate; pair grouping is
// handled separately by Pairs.
func Matches(m core.Message, spec core.ViewSpec) bool {
	subject := spec.SubjectID
	switch spec.Kind {
	case core.AllInvolved, core.ConversationPairs:
		return m.Involves(subject)
	case core.SentByMe:
		return m.Sender == subject
	case core.SentToMe:
		return m.Recipient == subject
	case core.SystemAndMe:
		return m.IsSystem || m.Sender == subject
	default:
		return false
	}
}

// Filter returns the messages visible under the view spec, preserving log
// order. It is a pure, single-pass function of (snapshot, spec) and never
// mutates its input.
func Filter(msgs []core.Message, spec core.ViewSpec) []core.Message {
	out := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if Matches(m, spec) {
			out = append(out, m)
		}
	}
	return out
}

// Describe returns a human readable description of what the view spec shows,
// for diagnostics and configuration introspection.
func Describe(spec core.ViewSpec) string {
	switch spec.Kind {
	case core.AllInvolved:
		return fmt.Sprintf("messages sent by, addressed to, or broadcast around %s", spec.SubjectID)
	case core.SentByMe:
		return fmt.Sprintf("messages sent by %s", spec.SubjectID)
	case core.SentToMe:
		return fmt.Sprintf("messages addressed to %s", spec.SubjectID)
	case core.SystemAndMe:
		return fmt.Sprintf("system messages plus messages sent by %s", spec.SubjectID)
	case core.ConversationPairs:
		return fmt.Sprintf("request/response exchanges involving %s", spec.SubjectID)
	default:
		return "unknown view"
	}
}
