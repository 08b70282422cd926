// Package jsonpath implements the path-expression accessor used to read
// and write nested values inside a version entry's properties. It
// accepts dotted and bracketed expressions such as "foo.bar[0]" or
// `tags["lts"]` and evaluates them with gjson/sjson over the
// JSON-compatible properties value.
package jsonpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrBadExpr reports a malformed path expression.
var ErrBadExpr = errors.New("invalid property path")

// translate converts a dotted/bracketed expression into the dotted form
// understood by gjson: "foo.bar[0]" becomes "foo.bar.0".
func translate(expr string) (string, error) {
	var b strings.Builder
	writeSep := func() {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
	}

	i := 0
	for i < len(expr) {
		switch expr[i] {
		case '.':
			i++
		case '[':
			j := strings.IndexByte(expr[i:], ']')
			if j < 0 {
				return "", fmt.Errorf("%w: unterminated bracket in %q", ErrBadExpr, expr)
			}
			inner := strings.Trim(expr[i+1:i+j], `"'`)
			if inner == "" {
				return "", fmt.Errorf("%w: empty bracket in %q", ErrBadExpr, expr)
			}
			writeSep()
			b.WriteString(inner)
			i += j + 1
		case ']':
			return "", fmt.Errorf("%w: unmatched bracket in %q", ErrBadExpr, expr)
		default:
			j := i
			for j < len(expr) && expr[j] != '.' && expr[j] != '[' && expr[j] != ']' {
				j++
			}
			writeSep()
			b.WriteString(expr[i:j])
			i = j
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty expression", ErrBadExpr)
	}
	return b.String(), nil
}

func marshalProps(props any) ([]byte, error) {
	if props == nil {
		return []byte(`{}`), nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshaling properties: %w", err)
	}
	return data, nil
}

// Get returns the value at expr within props. ok is false when the path
// resolves to nothing.
func Get(props any, expr string) (value any, ok bool, err error) {
	path, err := translate(expr)
	if err != nil {
		return nil, false, err
	}
	data, err := marshalProps(props)
	if err != nil {
		return nil, false, err
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, false, nil
	}
	return res.Value(), true, nil
}

// Set writes value at expr and returns the new properties value,
// creating intermediate objects as needed.
func Set(props any, expr string, value any) (any, error) {
	path, err := translate(expr)
	if err != nil {
		return nil, err
	}
	data, err := marshalProps(props)
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetBytes(data, path, value)
	if err != nil {
		return nil, fmt.Errorf("setting %q: %w", expr, err)
	}
	var result any
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("setting %q: %w", expr, err)
	}
	return result, nil
}

// Delete removes the value at expr and returns the new properties
// value. Deleting a path that does not exist is a no-op.
func Delete(props any, expr string) (any, error) {
	path, err := translate(expr)
	if err != nil {
		return nil, err
	}
	data, err := marshalProps(props)
	if err != nil {
		return nil, err
	}
	out, err := sjson.DeleteBytes(data, path)
	if err != nil {
		return nil, fmt.Errorf("deleting %q: %w", expr, err)
	}
	var result any
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("deleting %q: %w", expr, err)
	}
	return result, nil
}
