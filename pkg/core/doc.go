// Package core implements the cube model: a directed acyclic graph of
// tables (cubes) connected by typed join relations, with cached
// reachability, join-path planning, and SQL rendering.
//
// The Model is the single owner of cubes; relations reference their
// endpoint cubes by name. All mutations validate synchronously and
// invalidate the derived reachability state. The package is not safe
// for concurrent use; callers embedding it in a server must serialize
// mutations against reads.
package core
