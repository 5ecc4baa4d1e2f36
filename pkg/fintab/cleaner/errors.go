package cleaner

import "errors"

// ErrNoColumns indicates the raw table has no columns.
var ErrNoColumns = errors.New("table has no columns")

// ErrNoRows indicates the raw table has no rows.
var ErrNoRows = errors.New("table has no rows")

// ErrMissingRowLabel indicates the row-label column is absent.
var ErrMissingRowLabel = errors.New("row-label column not found")

// ErrRowIndexOutOfRange indicates a header row index outside the raw table.
var ErrRowIndexOutOfRange = errors.New("row index out of range")

// ErrInvalidGroupWidth indicates a non-positive segment width.
var ErrInvalidGroupWidth = errors.New("group width must be positive")
