package project

import "errors"

var (
	// ErrProjectNotFound indicates no project exists with the given id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates the project name or description failed validation.
	ErrInvalidInput = errors.New("invalid project input")
)
