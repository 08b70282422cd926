package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	r := NewBuilder(t).
		WithEntry("docs", "1.0", WithTitle("1.0.0"), WithAliases("latest")).
		WithEntry("docs", "dev").
		WithEntry("api", "2.0", WithProperties(map[string]any{"tag": "lts"})).
		Build()

	require.Equal(t, 2, r.Len())

	entry, ok := r.Get("docs", "latest")
	require.True(t, ok)
	require.Equal(t, "1.0", entry.Identifier())
	require.Equal(t, "1.0.0", entry.Title())

	entry, ok = r.Get("api", "2.0")
	require.True(t, ok)
	require.Equal(t, map[string]any{"tag": "lts"}, entry.Properties())
}
