// Package lifecycle implements the domain layer for tracking AI model lifecycles.
//
// This package contains only pure Go code with standard library imports. It has no
// knowledge of file formats on disk, databases, or the command line.
//
// # Core Types
//
// Model is a named, versioned entity with a creation time and two optional milestones
// (deprecation and retirement). Its Status is a pure function of a reference time:
//
//	retirement <= at                  -> Retired
//	deprecation <= at < retirement    -> Deprecated
//	otherwise                         -> Active
//
// Boundaries are inclusive: a model is Deprecated at its deprecation instant. Use Builder
// or NewModel for construction; both validate milestone ordering and never return a
// partially valid Model. All timestamps are normalized to UTC.
//
// Record and Document are the structured forms used for persistence. A Record carries a
// derived status field for external readers; it is never read back.
//
// # Registry Collection
//
// Registry holds models in insertion order, keyed by (name, version). It provides:
//   - Add/Remove/Get for keyed access
//   - List/ListByStatus/ListByName for ordered queries
//   - Replace for all-or-nothing reloads
//   - Snapshot for serialization
//
// Provider is the read-only interface that Registry implements.
package lifecycle
