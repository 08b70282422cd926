package versions

import "errors"

// Registry errors
var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrDuplicateAlias    = errors.New("version duplicated as its own alias")
	ErrAliasConflict     = errors.New("alias conflict")
	ErrNotFound          = errors.New("version not found")
)
