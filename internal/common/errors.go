// Package common defines sentinel errors and helpers shared by the client
// packages. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrInvalidInput marks user input that failed local validation before
// anything was sent to the server.
var ErrInvalidInput = errors.New("invalid input")
