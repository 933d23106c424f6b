// Package view implements the pure projection layer of ConvoMem: predicate
// filters for the five view kinds, request/response pair grouping, and the
// Build function that applies filter, system preservation and windowing to a
// fixed log snapshot.
//
// Everything in this package is a deterministic function of its inputs. No
// function mutates the snapshot, takes locks, or reads shared state, so view
// construction for independent jobs can run fully in parallel.
package view
