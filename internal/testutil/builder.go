// Package testutil provides helpers for assembling version registries
// in tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ELGA-GmbH/mike-multi-project/internal/domain/versions"
)

// entryData holds all data for an entry to be added.
type entryData struct {
	component  string
	identifier string
	title      string
	aliases    []string
	properties any
}

// EntryOption configures one entry added by the builder.
type EntryOption func(*entryData)

// WithTitle sets the display title.
func WithTitle(title string) EntryOption {
	return func(e *entryData) { e.title = title }
}

// WithAliases sets the alias list.
func WithAliases(aliases ...string) EntryOption {
	return func(e *entryData) { e.aliases = aliases }
}

// WithProperties sets the opaque properties value.
func WithProperties(properties any) EntryOption {
	return func(e *entryData) { e.properties = properties }
}

// Builder accumulates entries and adds them in order.
type Builder struct {
	t       *testing.T
	entries []entryData
}

// NewBuilder creates a registry builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithEntry adds an entry with optional configuration.
func (b *Builder) WithEntry(component, identifier string, opts ...EntryOption) *Builder {
	entry := entryData{component: component, identifier: identifier}
	for _, opt := range opts {
		opt(&entry)
	}
	b.entries = append(b.entries, entry)
	return b
}

// Build adds all accumulated entries to a fresh registry.
func (b *Builder) Build() *versions.Registry {
	b.t.Helper()
	r := versions.NewRegistry()
	for _, e := range b.entries {
		entry, err := r.Add(e.component, e.identifier, e.title, e.aliases, false)
		require.NoError(b.t, err)
		if e.properties != nil {
			entry.SetProperties(e.properties)
		}
	}
	return r
}
