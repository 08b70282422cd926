package versions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: Construction ===

func TestNewEntry_Defaults(t *testing.T) {
	entry, err := NewEntry("1.0", "", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "1.0", entry.Identifier())
	require.Equal(t, "1.0", entry.Title(), "title should default to the identifier")
	require.Empty(t, entry.Aliases())
	require.Nil(t, entry.Properties())
}

func TestNewEntry_TitleAndAliases(t *testing.T) {
	entry, err := NewEntry("1.0", "1.0.2", []string{"latest", "stable"}, nil)
	require.NoError(t, err)
	require.Equal(t, "1.0.2", entry.Title())
	require.Equal(t, []string{"latest", "stable"}, entry.Aliases())
	require.True(t, entry.HasAlias("latest"))
	require.False(t, entry.HasAlias("1.0"))
}

func TestNewEntry_InvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{"empty", ""},
		{"dot", "."},
		{"dotdot", ".."},
		{"forward slash", "1.0/2"},
		{"backslash", `1.0\2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.identifier, "", nil, nil)
			require.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestNewEntry_InvalidAlias(t *testing.T) {
	_, err := NewEntry("1.0", "", []string{"latest", "bad/alias"}, nil)
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestNewEntry_IdentifierInAliases(t *testing.T) {
	_, err := NewEntry("1.0", "", []string{"latest", "1.0"}, nil)
	require.ErrorIs(t, err, ErrDuplicateAlias)
}

// === Unit Tests: Update ===

func TestEntryUpdate_UnionsAliases(t *testing.T) {
	entry, err := NewEntry("1.0", "", []string{"latest"}, nil)
	require.NoError(t, err)

	added, err := entry.Update("", []string{"latest", "stable"})
	require.NoError(t, err)
	require.Equal(t, []string{"stable"}, added, "only new aliases are reported")
	require.Equal(t, []string{"latest", "stable"}, entry.Aliases())
}

func TestEntryUpdate_TitleIsNonDestructive(t *testing.T) {
	entry, err := NewEntry("1.0", "First", nil, nil)
	require.NoError(t, err)

	_, err = entry.Update("", nil)
	require.NoError(t, err)
	require.Equal(t, "First", entry.Title(), "omitted title keeps the old value")

	_, err = entry.Update("Second", nil)
	require.NoError(t, err)
	require.Equal(t, "Second", entry.Title())
}

func TestEntryUpdate_RejectsOwnIdentifier(t *testing.T) {
	entry, err := NewEntry("1.0", "Old", []string{"latest"}, nil)
	require.NoError(t, err)

	_, err = entry.Update("New", []string{"1.0"})
	require.ErrorIs(t, err, ErrDuplicateAlias)
	require.Equal(t, "Old", entry.Title(), "failed update must not mutate")
	require.Equal(t, []string{"latest"}, entry.Aliases())
}

func TestEntryUpdate_RejectsInvalidAliasBeforeMutating(t *testing.T) {
	entry, err := NewEntry("1.0", "Old", nil, nil)
	require.NoError(t, err)

	_, err = entry.Update("New", []string{"ok", "../bad"})
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	require.Equal(t, "Old", entry.Title())
	require.Empty(t, entry.Aliases())
}

// === Unit Tests: Equality ===

func TestEntryEqual(t *testing.T) {
	base := func() *Entry {
		e, err := NewEntry("1.0", "1.0.0", []string{"latest"}, map[string]any{"tag": "lts"})
		require.NoError(t, err)
		return e
	}

	a, b := base(), base()
	require.True(t, a.Equal(b))

	b = base()
	_, err := b.Update("other", nil)
	require.NoError(t, err)
	require.False(t, a.Equal(b), "title differs")

	b = base()
	_, err = b.Update("", []string{"stable"})
	require.NoError(t, err)
	require.False(t, a.Equal(b), "aliases differ")

	b = base()
	b.SetProperties(nil)
	require.False(t, a.Equal(b), "properties differ")

	require.False(t, a.Equal(nil))
}

// === Unit Tests: JSON ===

func TestEntryJSON_RoundTrip(t *testing.T) {
	entry, err := NewEntry("1.0", "1.0.2", []string{"stable", "latest"},
		map[string]any{"tag": "lts", "order": float64(3)})
	require.NoError(t, err)

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var parsed Entry
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.True(t, entry.Equal(&parsed))
}

func TestEntryJSON_OmitsEmptyProperties(t *testing.T) {
	tests := []struct {
		name  string
		props any
	}{
		{"nil", nil},
		{"empty object", map[string]any{}},
		{"empty array", []any{}},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry("1.0", "", nil, tt.props)
			require.NoError(t, err)

			data, err := json.Marshal(entry)
			require.NoError(t, err)
			require.NotContains(t, string(data), "properties")
		})
	}
}

func TestEntryJSON_RequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing version", `{"title": "1.0", "aliases": []}`},
		{"missing title", `{"version": "1.0", "aliases": []}`},
		{"missing aliases", `{"version": "1.0", "title": "1.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry Entry
			err := json.Unmarshal([]byte(tt.doc), &entry)
			require.Error(t, err)
			require.Contains(t, err.Error(), "required keys")
		})
	}
}

func TestEntryJSON_OptionalProperties(t *testing.T) {
	var entry Entry
	err := json.Unmarshal([]byte(`{"version": "1.0", "title": "1.0", "aliases": ["latest"]}`), &entry)
	require.NoError(t, err)
	require.Nil(t, entry.Properties())
	require.Equal(t, []string{"latest"}, entry.Aliases())
}
