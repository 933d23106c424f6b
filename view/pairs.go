package view

import "github.com/hupe1980/convomem/core"

// Pair is one request/response unit of a subject's conversation. A complete
// pair holds a message addressed to the subject followed by the subject's
// next message. Incomplete units arise from a trailing unanswered request,
// from a subject message with no pending request, or from ambiguous
// multi-party interleavings (two inbound messages before a reply), which are
// additionally marked Ambiguous for review.
type Pair struct {
	Messages  []core.Message
	Complete  bool
	Ambiguous bool
}

// Pairs groups the subject's messages into request/response units in log
// order. The input should already be reduced to messages involving the
// subject (see Filter with ConversationPairs); messages involving neither
// party are skipped. The grouping is deterministic so that windowing by
// whole pairs is well-defined.
func Pairs(msgs []core.Message, subjectID string) []Pair {
	var (
		out     []Pair
		pending *Pair
	)

	for _, m := range msgs {
		switch {
		case m.Sender == subjectID:
			if pending != nil {
				pending.Messages = append(pending.Messages, m)
				pending.Complete = true
				out = append(out, *pending)
				pending = nil
				continue
			}
			// Subject speaks without a pending request; keep it as its own
			// unit so no message is dropped.
			out = append(out, Pair{Messages: []core.Message{m}})
		case m.AddressedTo(subjectID):
			if pending != nil {
				// Second inbound before the subject replied. Close the
				// pending request as incomplete and flag the interleaving.
				pending.Ambiguous = true
				out = append(out, *pending)
			}
			pending = &Pair{Messages: []core.Message{m}}
		}
	}

	if pending != nil {
		out = append(out, *pending)
	}

	return out
}

// Flatten concatenates pair units back into an ordered message sequence.
func Flatten(pairs []Pair) []core.Message {
	n := 0
	for _, p := range pairs {
		n += len(p.Messages)
	}
	out := make([]core.Message, 0, n)
	for _, p := range pairs {
		out = append(out, p.Messages...)
	}
	return out
}
