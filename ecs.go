// Package sekai implements an in-memory, archetype-based entity component store.
//
// Features:
// - Entities are generational handles; a handle kept past Destroy never aliases the
// entity that reuses its id.
// - Components of one type live in a packed pool keyed by entity id.
// - Entities sharing a component set share a canonical archetype; archetypes are linked
// by memoized single-component edges, so attaching or detaching a component is O(1)
// once the edge exists.
// - Filters cache their matching archetypes and lock them while iterating, so entities
// can be created, destroyed and restructured from inside a visitor.
// - One-shot components are set by one flush and cleared by the next.
//
// A World is single-threaded, entity creation and destruction included. Only the
// TypeRegistry and the Registry of named worlds are safe for concurrent use.
//
// Structural checks (stale handles, filter membership, index consistency) panic in
// development builds and compile out with the release build tag. Operating on a
// destroyed world panics in every build.
package sekai
