package backup

import "errors"

// ErrInvalidPayload indicates a restore payload without projects and models
// arrays.
var ErrInvalidPayload = errors.New("restore payload must contain projects and models arrays")
