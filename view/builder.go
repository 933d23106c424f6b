package view

import "github.com/hupe1980/convomem/core"

// Build computes the ordered context a subject sees for a fixed log snapshot.
// It is pure and idempotent: the same snapshot and settings always produce
// the same output, and the snapshot is never mutated.
//
// Steps:
//  1. Filter the snapshot by the settings' view spec, preserving log order.
//  2. If PreserveSystem is set, partition out system messages; they are
//     exempt from windowing.
//  3. If MaxUnits is set, keep only the most recent units of the remainder,
//     counting whole messages or whole pairs per the configured unit.
//  4. Emit system messages first, then the trimmed remainder, both in
//     original order.
//
// An empty snapshot or an absent subject yields an empty context, not an
// error.
func Build(snapshot []core.Message, s core.Settings) []core.Message {
	filtered := Filter(snapshot, s.View)

	var systemMsgs, rest []core.Message
	if s.PreserveSystem {
		for _, m := range filtered {
			if m.IsSystem {
				systemMsgs = append(systemMsgs, m)
			} else {
				rest = append(rest, m)
			}
		}
	} else {
		rest = filtered
	}

	if s.View.Kind == core.ConversationPairs {
		rest = windowPairs(rest, s)
	} else {
		rest = windowMessages(rest, s)
	}

	out := make([]core.Message, 0, len(systemMsgs)+len(rest))
	out = append(out, systemMsgs...)
	out = append(out, rest...)
	return out
}

// windowPairs groups the remainder into request/response units and keeps the
// most recent window. A pair counts as one unit regardless of the number of
// messages inside it; counting by messages trims the flattened sequence.
func windowPairs(rest []core.Message, s core.Settings) []core.Message {
	pairs := Pairs(rest, s.View.SubjectID)
	if s.MaxUnits > 0 && s.Unit == core.UnitPairs && len(pairs) > s.MaxUnits {
		pairs = pairs[len(pairs)-s.MaxUnits:]
	}
	flat := Flatten(pairs)
	if s.MaxUnits > 0 && s.Unit == core.UnitMessages && len(flat) > s.MaxUnits {
		flat = flat[len(flat)-s.MaxUnits:]
	}
	return flat
}

// windowMessages keeps the most recent window of plain messages. UnitPairs
// outside the pairs view counts exchanges, i.e. two messages per unit.
func windowMessages(rest []core.Message, s core.Settings) []core.Message {
	if s.MaxUnits <= 0 {
		return rest
	}
	keep := s.MaxUnits
	if s.Unit == core.UnitPairs {
		keep *= 2
	}
	if len(rest) > keep {
		rest = rest[len(rest)-keep:]
	}
	return rest
}

// Latest returns the most recent message visible under the settings, or
// false when the view is empty.
func Latest(snapshot []core.Message, s core.Settings) (core.Message, bool) {
	v := Build(snapshot, s)
	if len(v) == 0 {
		return core.Message{}, false
	}
	return v[len(v)-1], true
}

// Count returns the number of messages visible under the settings.
func Count(snapshot []core.Message, s core.Settings) int {
	return len(Build(snapshot, s))
}
