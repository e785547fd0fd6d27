package model

import (
	"time"

	"github.com/c4board/c4board/internal/c4"
)

// Summary is the listing-weight view of a model, without the diagram payload.
type Summary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Detail is a summary plus the full diagram payload. It is fetched only when
// a model becomes active.
type Detail struct {
	Summary
	Model c4.Model `json:"model"`
}
