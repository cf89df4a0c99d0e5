package repositories

import "errors"

// ErrNotFound is returned when an id does not resolve to a record.
// Callers match it with errors.Is; handlers map it to a 404.
var ErrNotFound = errors.New("record not found")
