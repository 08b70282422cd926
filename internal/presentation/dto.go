package presentation

import (
	"github.com/ELGA-GmbH/mike-multi-project/internal/domain/versions"
)

// EntryDTO mirrors the persisted shape of a version entry for output.
type EntryDTO struct {
	Version    string   `json:"version"`
	Title      string   `json:"title"`
	Aliases    []string `json:"aliases"`
	Properties any      `json:"properties,omitempty"`
}

// FromEntries converts domain entries, preserving their order.
func FromEntries(entries []*versions.Entry) []EntryDTO {
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, EntryDTO{
			Version:    entry.Identifier(),
			Title:      entry.Title(),
			Aliases:    entry.Aliases(),
			Properties: entry.Properties(),
		})
	}
	return dtos
}

// FromRegistry converts every component of a registry, keyed by
// component name.
func FromRegistry(r *versions.Registry) map[string][]EntryDTO {
	doc := make(map[string][]EntryDTO, r.Len())
	for _, component := range r.Components() {
		doc[component] = FromEntries(r.Entries(component))
	}
	return doc
}
