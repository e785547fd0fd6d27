package model

import "errors"

var (
	// ErrModelNotFound indicates the model doesn't exist.
	ErrModelNotFound = errors.New("model not found")
	// ErrInvalidInput indicates invalid model input.
	ErrInvalidInput = errors.New("invalid model input")
)
