package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ELGA-GmbH/mike-multi-project/internal/domain/versions"
)

func testRegistry(t *testing.T) *versions.Registry {
	t.Helper()
	r := versions.NewRegistry()
	_, err := r.Add("docs", "1.0", "1.0.0", []string{"latest"}, false)
	require.NoError(t, err)
	_, err = r.Add("docs", "dev", "", nil, false)
	require.NoError(t, err)
	return r
}

func TestFromEntries(t *testing.T) {
	r := testRegistry(t)

	dtos := FromEntries(r.Entries("docs"))
	require.Len(t, dtos, 2)
	require.Equal(t, "dev", dtos[0].Version, "ordering is preserved")
	require.Equal(t, "1.0", dtos[1].Version)
	require.Equal(t, "1.0.0", dtos[1].Title)
	require.Equal(t, []string{"latest"}, dtos[1].Aliases)
}

func TestFormatJSON(t *testing.T) {
	r := testRegistry(t)
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatJSON(FromRegistry(r)))

	var parsed map[string][]EntryDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed["docs"], 2)
	require.Contains(t, buf.String(), "\n  ", "output is indented")
}

func TestFormatEntries(t *testing.T) {
	r := testRegistry(t)
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatEntries(FromEntries(r.Entries("docs"))))

	out := buf.String()
	require.Contains(t, out, "dev")
	require.Contains(t, out, "1.0.0 (")
	require.Contains(t, out, "[latest]")
}

func TestFormatComponents(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Add("api", "2.0", "", nil, false)
	require.NoError(t, err)
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatComponents(FromRegistry(r), r.Components()))

	out := buf.String()
	require.Contains(t, out, "api")
	require.Contains(t, out, "docs")
	require.Contains(t, out, "2.0")
}
