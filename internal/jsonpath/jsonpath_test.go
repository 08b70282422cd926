package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    string
		wantErr bool
	}{
		{"bare key", "tag", "tag", false},
		{"dotted", "foo.bar", "foo.bar", false},
		{"index", "foo[0]", "foo.0", false},
		{"index then key", "foo[0].bar", "foo.0.bar", false},
		{"quoted key", `foo["bar baz"]`, "foo.bar baz", false},
		{"single quoted key", "foo['bar']", "foo.bar", false},
		{"leading bracket", "[2]", "2", false},
		{"empty", "", "", true},
		{"unterminated", "foo[0", "", true},
		{"unmatched close", "foo]0[", "", true},
		{"empty bracket", "foo[]", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate(tt.expr)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadExpr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	props := map[string]any{
		"tag": "lts",
		"ci": map[string]any{
			"checks": []any{"unit", "lint"},
		},
	}

	value, ok, err := Get(props, "tag")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "lts", value)

	value, ok, err = Get(props, "ci.checks[1]")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "lint", value)

	_, ok, err = Get(props, "missing.path")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = Get(props, "bad[")
	require.ErrorIs(t, err, ErrBadExpr)
}

func TestSet(t *testing.T) {
	props, err := Set(nil, "tag", "lts")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"tag": "lts"}, props)

	props, err = Set(props, "ci.checks[0]", "unit")
	require.NoError(t, err)

	value, ok, err := Get(props, "ci.checks[0]")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "unit", value)
}

func TestDelete(t *testing.T) {
	props := map[string]any{"tag": "lts", "order": float64(3)}

	result, err := Delete(props, "tag")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"order": float64(3)}, result)

	// Deleting a missing path is a no-op.
	result, err = Delete(result, "tag")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"order": float64(3)}, result)
}
