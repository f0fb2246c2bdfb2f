// Package core defines sentinel errors.
package core

import "errors"

var (
	// Configuration errors
	ErrConfigInvalid = errors.New("wirecut: invalid configuration")

	// Stream adaptation errors
	ErrEmptyFrame = errors.New("wirecut: empty frame")
	ErrNoFrames   = errors.New("wirecut: capture contains no frames")
)
