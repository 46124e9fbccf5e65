// Package content defines the editor's entity model: images, parameters,
// actions, cards and events, plus the pure editing operations over a card or
// event's conditions and actions.
//
// # Identity
//
// Every entity carries a string ID that is unique within its own collection.
// IDs are assigned by the owning store at creation time (callers never supply
// one) using an IDSource: an entity-kind prefix, the creation timestamp in
// unix milliseconds, and a monotonic counter. The counter guarantees
// uniqueness even when two entities are created within the same millisecond.
//
// # References
//
// Cross-entity references (ImageID, ActionID, NextCardID, InitialCardID) are
// plain ID strings and MAY dangle: the referenced entity can be deleted after
// the reference was recorded. Consumers treat a dangling reference as "no
// selection" and never fail on it.
//
// # Editing operations
//
// The functions in edit.go are pure: they take a conditions or actions slice
// and return a fresh slice, never mutating the input. Array-valued fields
// (conditions, actions, tags) are always replaced wholesale during merges,
// never diffed element-wise.
package content
