package versions

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Ref records how a lookup matched. Owner is the primary identifier of
// the matched entry; Alias is set when the match went through an alias.
type Ref struct {
	Owner string
	Alias string
}

// IsAlias reports whether the lookup matched an alias rather than a
// primary identifier.
func (r Ref) IsAlias() bool { return r.Alias != "" }

// Op names a registry mutation for the observer hook.
type Op string

// Observer operations
const (
	OpAdd             Op = "add"
	OpUpdate          Op = "update"
	OpRemove          Op = "remove"
	OpAliasRemoved    Op = "alias-removed"
	OpAliasReassigned Op = "alias-reassigned"
)

// Event describes one completed registry mutation.
type Event struct {
	Op         Op
	Component  string
	Identifier string
	Aliases    []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver installs a callback invoked after each completed
// mutation. The registry is silent by default.
func WithObserver(fn func(Event)) Option {
	return func(r *Registry) { r.observer = fn }
}

// Registry partitions version entries by component name and enforces
// that, within one component, no string is simultaneously a primary
// identifier and an alias, and no alias belongs to two entries.
//
// The registry is a plain in-memory structure with no locking: it
// assumes exclusive ownership of its backing document for one
// load→mutate→save cycle, coordinated by the caller.
type Registry struct {
	components map[string]map[string]*Entry
	observer   func(Event)
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{components: make(map[string]map[string]*Entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) emit(ev Event) {
	if r.observer != nil {
		r.observer(ev)
	}
}

// Find looks identifier up within a component. The returned Ref names
// the owning entry and, when the match went through an alias, the alias
// itself. ok is false when nothing matches.
func (r *Registry) Find(component, identifier string) (Ref, bool) {
	entries, ok := r.components[component]
	if !ok {
		return Ref{}, false
	}
	if _, ok := entries[identifier]; ok {
		return Ref{Owner: identifier}, true
	}
	// Aliases are unique within a component, so at most one entry matches.
	for owner, entry := range entries {
		if entry.HasAlias(identifier) {
			return Ref{Owner: owner, Alias: identifier}, true
		}
	}
	return Ref{}, false
}

// Resolve is the strict form of Find, failing with ErrNotFound.
func (r *Registry) Resolve(component, identifier string) (Ref, error) {
	ref, ok := r.Find(component, identifier)
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q in component %q", ErrNotFound, identifier, component)
	}
	return ref, nil
}

// Get returns the entry whose primary identifier or alias matches
// identifier.
func (r *Registry) Get(component, identifier string) (*Entry, bool) {
	ref, ok := r.Find(component, identifier)
	if !ok {
		return nil, false
	}
	return r.components[component][ref.Owner], true
}

// ensureUnique enforces the per-component uniqueness invariant before a
// structural mutation of identifier's entry. It returns the alias
// bindings that must be stripped from their current owners; the caller
// performs the removal only once the rest of the mutation is certain to
// succeed, so failure paths detected here leave the registry untouched.
func (r *Registry) ensureUnique(component, identifier string, aliases []string, allowReassign bool) ([]Ref, error) {
	var reassigned []Ref

	// The identifier may currently be an alias of another entry; it is
	// promoted to a primary identifier only when reassignment is allowed.
	if ref, ok := r.Find(component, identifier); ok && ref.IsAlias() {
		if !allowReassign {
			return nil, fmt.Errorf("%w: %q is already an alias for version %q in component %q",
				ErrAliasConflict, identifier, ref.Owner, component)
		}
		reassigned = append(reassigned, ref)
	}

	for _, alias := range aliases {
		ref, ok := r.Find(component, alias)
		if !ok || ref.Owner == identifier {
			// Unused, or already bound to this entry (idempotent). An
			// alias equal to the identifier itself falls through here and
			// is rejected by the entry as a duplicate.
			continue
		}
		if !ref.IsAlias() {
			// A primary identifier is never demoted to an alias implicitly.
			return nil, fmt.Errorf("%w: %q is already a version in component %q",
				ErrAliasConflict, alias, component)
		}
		if !allowReassign {
			return nil, fmt.Errorf("%w: %q already exists for version %q in component %q",
				ErrAliasConflict, alias, ref.Owner, component)
		}
		reassigned = append(reassigned, ref)
	}
	return reassigned, nil
}

// strip removes previously recorded alias bindings from their owners.
func (r *Registry) strip(component, newOwner string, reassigned []Ref) {
	for _, ref := range reassigned {
		r.components[component][ref.Owner].dropAlias(ref.Alias)
		r.emit(Event{
			Op:         OpAliasReassigned,
			Component:  component,
			Identifier: newOwner,
			Aliases:    []string{ref.Alias},
		})
	}
}

// Add creates the entry for identifier, or updates it in place when it
// already exists: the title is replaced when given and the aliases are
// unioned in. This is the single path for both first deployment and
// re-deployment, so callers never branch on existence. With
// allowReassign, aliases held by other entries migrate to this one;
// without it, any collision fails with ErrAliasConflict and the
// registry is left unchanged.
func (r *Registry) Add(component, identifier, title string, aliases []string, allowReassign bool) (*Entry, error) {
	reassigned, err := r.ensureUnique(component, identifier, aliases, allowReassign)
	if err != nil {
		return nil, err
	}

	entries := r.components[component]
	op := OpAdd
	entry, exists := entries[identifier]
	if exists {
		op = OpUpdate
		if _, err := entry.Update(title, aliases); err != nil {
			return nil, err
		}
	} else {
		entry, err = NewEntry(identifier, title, aliases, nil)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = make(map[string]*Entry)
			r.components[component] = entries
		}
		entries[identifier] = entry
	}

	r.strip(component, identifier, reassigned)
	r.emit(Event{Op: op, Component: component, Identifier: identifier, Aliases: aliases})
	return entry, nil
}

// Update modifies an existing entry, resolved by identifier or alias.
// Unlike Add it never creates an entry: a missing target fails with
// ErrNotFound. It returns the aliases that were newly added.
func (r *Registry) Update(component, identifier, title string, aliases []string, allowReassign bool) ([]string, error) {
	ref, err := r.Resolve(component, identifier)
	if err != nil {
		return nil, err
	}

	reassigned, err := r.ensureUnique(component, ref.Owner, aliases, allowReassign)
	if err != nil {
		return nil, err
	}

	entry := r.components[component][ref.Owner]
	added, err := entry.Update(title, aliases)
	if err != nil {
		return nil, err
	}

	r.strip(component, ref.Owner, reassigned)
	r.emit(Event{Op: OpUpdate, Component: component, Identifier: ref.Owner, Aliases: added})
	return added, nil
}

// Remove deletes the entry named by identifier, or strips identifier
// from its owner's alias set when it names an alias (the entry itself
// survives). The affected entry is returned either way.
func (r *Registry) Remove(component, identifier string) (*Entry, error) {
	ref, err := r.Resolve(component, identifier)
	if err != nil {
		return nil, err
	}
	return r.removeRef(component, ref), nil
}

func (r *Registry) removeRef(component string, ref Ref) *Entry {
	entries := r.components[component]
	entry := entries[ref.Owner]
	if entry == nil {
		// Already removed by an earlier ref in a bulk operation.
		return nil
	}
	if ref.IsAlias() {
		entry.dropAlias(ref.Alias)
		r.emit(Event{Op: OpAliasRemoved, Component: component, Identifier: ref.Owner, Aliases: []string{ref.Alias}})
		return entry
	}
	delete(entries, ref.Owner)
	r.emit(Event{Op: OpRemove, Component: component, Identifier: ref.Owner})
	return entry
}

// RemoveAll removes several identifiers from one component. Every
// identifier is resolved up front; if any is missing the whole call
// fails with ErrNotFound naming all of them and nothing is removed.
func (r *Registry) RemoveAll(component string, identifiers []string) ([]*Entry, error) {
	refs := make([]Ref, 0, len(identifiers))
	var missing []string
	for _, identifier := range identifiers {
		ref, ok := r.Find(component, identifier)
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", identifier))
			continue
		}
		refs = append(refs, ref)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s in component %q",
			ErrNotFound, strings.Join(missing, ", "), component)
	}

	removed := make([]*Entry, 0, len(refs))
	for _, ref := range refs {
		if entry := r.removeRef(component, ref); entry != nil {
			removed = append(removed, entry)
		}
	}
	return removed, nil
}

// Len returns the number of components, not the total entry count.
func (r *Registry) Len() int { return len(r.components) }

// HasComponent reports whether a component bucket exists.
func (r *Registry) HasComponent(component string) bool {
	_, ok := r.components[component]
	return ok
}

// Components returns all component names sorted alphabetically.
func (r *Registry) Components() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns one component's entries ordered newest-first:
// non-release identifiers such as "dev" come before release versions,
// which sort in descending version order.
func (r *Registry) Entries(component string) []*Entry {
	entries := make([]*Entry, 0, len(r.components[component]))
	for _, entry := range r.components[component] {
		entries = append(entries, entry)
	}
	sortEntries(entries)
	return entries
}

// All returns every entry across every component, newest-first. Entries
// from different components interleave; ties keep component name order.
func (r *Registry) All() []*Entry {
	var all []*Entry
	for _, component := range r.Components() {
		for _, entry := range r.components[component] {
			all = append(all, entry)
		}
	}
	sortEntries(all)
	return all
}

func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i].identifier, entries[j].identifier) > 0
	})
}

// MarshalJSON implements json.Marshaler. The document is an object
// keyed by component name, each holding the component's entries in
// newest-first order for stable, diff-friendly output.
func (r *Registry) MarshalJSON() ([]byte, error) {
	doc := make(map[string][]*Entry, len(r.components))
	for name := range r.components {
		doc[name] = r.Entries(name)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. Loading replays the same
// uniqueness checks as live mutation, so a document with colliding
// aliases fails instead of silently admitting inconsistent data. On
// failure the receiver is left unchanged.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc map[string][]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	fresh := &Registry{components: make(map[string]map[string]*Entry, len(doc))}
	for _, name := range names {
		bucket := make(map[string]*Entry, len(doc[name]))
		fresh.components[name] = bucket
		for _, raw := range doc[name] {
			entry := new(Entry)
			if err := json.Unmarshal(raw, entry); err != nil {
				return fmt.Errorf("component %q: %w", name, err)
			}
			if _, err := fresh.ensureUnique(name, entry.identifier, entry.Aliases(), false); err != nil {
				return err
			}
			bucket[entry.identifier] = entry
		}
	}

	r.components = fresh.components
	return nil
}

// Parse reconstructs a registry from its persisted JSON document.
func Parse(data []byte, opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing version manifest: %w", err)
	}
	return r, nil
}

// Dump serializes the registry pretty-printed with a stable two-space
// indent, keeping version control diffs readable.
func (r *Registry) Dump() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
