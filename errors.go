package dbx

import "errors"

// ErrCommandConsumed is returned when a command unit is passed to an
// execution function after it has already been consumed.
var ErrCommandConsumed = errors.New("dbx: command already consumed")
