// Package dag builds and validates the directed acyclic graph of tasks.
//
// Build turns an ordered sequence of task specs into an immutable Graph:
// nodes keyed by ID, a deduplicated edge list, adjacency maps in both
// directions, and the entry/exit node sets. Beyond the explicitly declared
// dependencies, Build wires conventional pipeline-order dependencies from a
// declarative role gating table (a verify task gates on the nearest earlier
// review task if one exists, else on the nearest earlier generate task, and
// so on).
//
// TopoSort orders the graph with a three-color depth-first traversal and is
// the cycle authority: encountering an in-progress node again fails the sort
// with a CycleError. Build runs the same validation eagerly so a malformed
// pipeline is rejected before any resource is committed to it.
package dag
