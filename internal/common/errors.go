package common

import "errors"

// ErrInvalidArgument marks malformed input to one of the core operations
// (negative experience, non-positive delta or limit). Callers check it
// with errors.Is; it is never retried.
var ErrInvalidArgument = errors.New("invalid argument")
