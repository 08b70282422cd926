package versions

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Entry describes one deployed version of a component: its canonical
// identifier, display title, alias set, and optional opaque properties.
type Entry struct {
	identifier string
	title      string
	aliases    map[string]struct{}
	properties any
}

// NewEntry constructs a validated entry. An empty title defaults to the
// identifier. The identifier itself must not appear among the aliases.
func NewEntry(identifier, title string, aliases []string, properties any) (*Entry, error) {
	if err := checkIdentifier(identifier, "version"); err != nil {
		return nil, err
	}
	for _, alias := range aliases {
		if err := checkIdentifier(alias, "alias"); err != nil {
			return nil, err
		}
		if alias == identifier {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlias, identifier)
		}
	}
	if title == "" {
		title = identifier
	}

	e := &Entry{
		identifier: identifier,
		title:      title,
		aliases:    make(map[string]struct{}, len(aliases)),
		properties: properties,
	}
	for _, alias := range aliases {
		e.aliases[alias] = struct{}{}
	}
	return e, nil
}

// checkIdentifier rejects strings that cannot become directory names on
// the deploy target: empty, "." or "..", or containing a path separator.
func checkIdentifier(s, kind string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidIdentifier, s, kind)
	}
	return nil
}

// Identifier returns the canonical version string.
func (e *Entry) Identifier() string { return e.identifier }

// Title returns the display title.
func (e *Entry) Title() string { return e.title }

// Aliases returns the alias set sorted alphabetically.
func (e *Entry) Aliases() []string {
	aliases := make([]string, 0, len(e.aliases))
	for alias := range e.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// HasAlias reports whether alias belongs to this entry.
func (e *Entry) HasAlias(alias string) bool {
	_, ok := e.aliases[alias]
	return ok
}

// Properties returns the opaque properties value.
func (e *Entry) Properties() any { return e.properties }

// SetProperties replaces the opaque properties value.
func (e *Entry) SetProperties(properties any) { e.properties = properties }

// Update sets the title when non-empty and unions the given aliases into
// the alias set. Aliases are never removed here. It returns the aliases
// that were newly added, which the registry uses to know what must be
// stripped from other entries. All validation runs before any mutation.
func (e *Entry) Update(title string, aliases []string) ([]string, error) {
	for _, alias := range aliases {
		if err := checkIdentifier(alias, "alias"); err != nil {
			return nil, err
		}
		if alias == e.identifier {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
		}
	}

	if title != "" {
		e.title = title
	}
	var added []string
	for _, alias := range aliases {
		if _, ok := e.aliases[alias]; !ok {
			e.aliases[alias] = struct{}{}
			added = append(added, alias)
		}
	}
	sort.Strings(added)
	return added, nil
}

// dropAlias removes one alias from the set.
func (e *Entry) dropAlias(alias string) {
	delete(e.aliases, alias)
}

// Equal reports structural equality: identifier, title, alias set and
// properties must all match.
func (e *Entry) Equal(other *Entry) bool {
	if other == nil {
		return false
	}
	if e.identifier != other.identifier || e.title != other.title {
		return false
	}
	if len(e.aliases) != len(other.aliases) {
		return false
	}
	for alias := range e.aliases {
		if _, ok := other.aliases[alias]; !ok {
			return false
		}
	}
	return reflect.DeepEqual(e.properties, other.properties)
}

func (e *Entry) String() string {
	var props string
	if !emptyProperties(e.properties) {
		props = fmt.Sprintf(", %v", e.properties)
	}
	return fmt.Sprintf("Entry(%q, %q, [%s]%s)",
		e.identifier, e.title, strings.Join(e.Aliases(), ", "), props)
}

// entryJSON is the persisted shape of an entry. The version, title and
// aliases keys are required on parse; properties is optional and omitted
// when empty.
type entryJSON struct {
	Version    string          `json:"version"`
	Title      string          `json:"title"`
	Aliases    []string        `json:"aliases"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		Version: e.identifier,
		Title:   e.title,
		Aliases: e.Aliases(),
	}
	if !emptyProperties(e.properties) {
		props, err := json.Marshal(e.properties)
		if err != nil {
			return nil, fmt.Errorf("marshaling properties of %q: %w", e.identifier, err)
		}
		out.Properties = props
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The stored title is kept
// verbatim, even when empty.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version    *string         `json:"version"`
		Title      *string         `json:"title"`
		Aliases    *[]string       `json:"aliases"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Version == nil || raw.Title == nil || raw.Aliases == nil {
		return fmt.Errorf("version entry is missing required keys (version, title, aliases)")
	}

	var properties any
	if len(raw.Properties) > 0 {
		if err := json.Unmarshal(raw.Properties, &properties); err != nil {
			return fmt.Errorf("parsing properties of %q: %w", *raw.Version, err)
		}
	}

	entry, err := NewEntry(*raw.Version, *raw.Title, *raw.Aliases, properties)
	if err != nil {
		return err
	}
	entry.title = *raw.Title
	*e = *entry
	return nil
}

// emptyProperties reports whether a properties value carries no content
// worth persisting.
func emptyProperties(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
