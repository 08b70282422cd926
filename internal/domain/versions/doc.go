// Package versions implements the domain layer for the deployment
// version registry.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the Entry entity and the Ref value object
//   - Implements domain logic (identifier validation, alias uniqueness,
//     loose version ordering)
//   - Has no knowledge of infrastructure concerns (file I/O, git, HTTP)
//
// # Core Types
//
// Entry represents one deployed version of a component: its canonical
// identifier, display title, mutable alias set, and opaque properties.
//
// Registry is the collection type partitioning entries by component name.
// It enforces the central invariant: within one component, the set of all
// identifiers and the set of all aliases are pairwise disjoint. Every
// structural mutation runs the full uniqueness check before anything is
// modified, so a failed call leaves the registry unchanged.
//
// Ref records how a lookup matched: directly by identifier, or through an
// alias of some owning entry.
//
// # Persistence
//
// The registry round-trips through a JSON document keyed by component
// name. Loading replays the same uniqueness checks as live mutation, so a
// corrupt document with colliding aliases fails fast instead of admitting
// inconsistent state. The registry has no persistence mechanism of its
// own; callers own load and save timing (see internal/storage).
package versions
