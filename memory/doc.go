// Package memory holds the policy layer of ConvoMem: per-job memory bindings
// and the scheduler that decides when a binding's narrowing is applied.
//
// A JobBinding attaches concrete core.Settings and an ApplyTiming to one
// running job instance. Agent identity carries no memory state of its own;
// the same agent may run under different bindings in different jobs. The
// Scheduler centralizes all timing conditionals as a small per-job state
// machine (Unbound -> Bound -> Applied) keyed on the iteration count, so
// handler code never branches on timing itself.
package memory
