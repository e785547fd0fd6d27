package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/c4board/c4board/internal/c4"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/repository"
)

// ModelRepository implements model.Repository for SQLite
type ModelRepository struct {
	db *DB
}

// NewModelRepository creates a new ModelRepository
func NewModelRepository(db *DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func marshalDiagram(m c4.Model) (string, error) {
	data, err := json.Marshal(m.Normalize())
	if err != nil {
		return "", fmt.Errorf("failed to marshal diagram: %w", err)
	}
	return string(data), nil
}

func unmarshalDiagram(data string) (c4.Model, error) {
	var m c4.Model
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return c4.Model{}, fmt.Errorf("failed to unmarshal diagram: %w", err)
	}
	return m.Normalize(), nil
}

// Create creates a new model
func (r *ModelRepository) Create(ctx context.Context, detail *model.Detail) error {
	diagram, err := marshalDiagram(detail.Model)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO models (id, project_id, name, description, model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		detail.ID,
		detail.ProjectID,
		detail.Name,
		detail.Description,
		diagram,
		detail.CreatedAt,
		detail.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	return nil
}

// Get retrieves a model with its diagram payload
func (r *ModelRepository) Get(ctx context.Context, id string) (*model.Detail, error) {
	query := `
		SELECT id, project_id, name, description, model, created_at, updated_at
		FROM models
		WHERE id = ?
	`

	var detail model.Detail
	var diagram string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.ProjectID,
		&detail.Name,
		&detail.Description,
		&diagram,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}

	detail.Model, err = unmarshalDiagram(diagram)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// Update replaces a model's mutable fields and diagram payload
func (r *ModelRepository) Update(ctx context.Context, detail *model.Detail) error {
	diagram, err := marshalDiagram(detail.Model)
	if err != nil {
		return err
	}

	query := `
		UPDATE models
		SET name = ?, description = ?, model = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		detail.Name,
		detail.Description,
		diagram,
		detail.UpdatedAt,
		detail.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update model: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a model
func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByProject returns the summaries for a project's models, oldest first
func (r *ModelRepository) ListByProject(ctx context.Context, projectID string) ([]model.Summary, error) {
	query := `
		SELECT id, project_id, name, description, created_at, updated_at
		FROM models
		WHERE project_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	summaries := []model.Summary{}
	for rows.Next() {
		var summary model.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.ProjectID,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating model rows: %w", err)
	}

	return summaries, nil
}

// AllDetails returns every model with its diagram payload, for export
func (r *ModelRepository) AllDetails(ctx context.Context) ([]model.Detail, error) {
	query := `
		SELECT id, project_id, name, description, model, created_at, updated_at
		FROM models
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list model details: %w", err)
	}
	defer rows.Close()

	details := []model.Detail{}
	for rows.Next() {
		var detail model.Detail
		var diagram string
		err := rows.Scan(
			&detail.ID,
			&detail.ProjectID,
			&detail.Name,
			&detail.Description,
			&diagram,
			&detail.CreatedAt,
			&detail.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model detail: %w", err)
		}
		detail.Model, err = unmarshalDiagram(diagram)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating model rows: %w", err)
	}

	return details, nil
}
