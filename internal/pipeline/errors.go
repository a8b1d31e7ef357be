package pipeline

import "errors"

// Every pipeline failure is terminal for its request: nothing is retried and
// no partial artifact is written.
var (
	ErrFileUnreadable      = errors.New("file cannot be read as tabular data")
	ErrHeaderNotFound      = errors.New("header row with marker column not found")
	ErrSchemaMismatch      = errors.New("marker row found but key column is missing")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrEmptyResult         = errors.New("no quote lines survived filtering")
)
