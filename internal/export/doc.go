// Package export transforms the editor's content graph into the game-world
// document consumed by the runtime engine.
//
// The pipeline is a pure function of (cards, events, images) snapshots: no
// hidden state, no store access, no I/O. Cross-references are resolved here:
// image ids become URLs, event-card links become embedded ids, and dangling
// references always resolve to neutral placeholders, never errors.
//
// The wire format is a fixed schema (see types.go); field names must match
// the runtime byte-for-byte, so the structs carry explicit camelCase JSON
// tags rather than relying on any derived naming.
//
// MarshalCanonical and Fingerprint give the autosaver a stable content hash:
// repeated exports of an unchanged graph serialize identically, so redundant
// blob writes can be skipped.
package export
