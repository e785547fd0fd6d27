package project

import "time"

// Project groups related diagram models. ModelCount is derived from the
// models table and is never stored directly.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ModelCount  int       `json:"modelCount"`
}
