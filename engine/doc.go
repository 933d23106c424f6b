// Package engine wires the conversation log, the pure view layer and the
// memory scheduler into the execution-scoped coordinator consumed by an
// orchestration engine: AppendMessage after every produced message,
// Bind/BindProfile when a job is scheduled, GetContext immediately before
// each agent invocation, CompleteJob when the job finishes.
//
// One Engine corresponds to one workflow execution and owns exactly one
// conversation log. View builds are memoized in a ristretto cache keyed by
// snapshot length, so repeated context fetches between appends are free.
package engine
