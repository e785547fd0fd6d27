package sqlite

import (
	"context"
	"fmt"

	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
	"github.com/c4board/c4board/internal/repository"
)

// BackupRepository implements the restore and export persistence for SQLite
type BackupRepository struct {
	db *DB
}

// NewBackupRepository creates a new BackupRepository
func NewBackupRepository(db *DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// ReplaceAll wipes both tables and inserts the given rows inside a single
// transaction. Models are deleted before projects to satisfy the foreign key;
// any failure rolls the whole replacement back.
func (r *BackupRepository) ReplaceAll(ctx context.Context, projects []project.Project, models []model.Detail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models`); err != nil {
		return fmt.Errorf("failed to clear models: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	for _, proj := range projects {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, description, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			proj.ID, proj.Name, proj.Description, proj.CreatedAt, proj.UpdatedAt,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("restoring project %s: %w", proj.ID, repository.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to restore project %s: %w", proj.ID, err)
		}
	}

	for _, detail := range models {
		diagram, err := marshalDiagram(detail.Model)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO models (id, project_id, name, description, model, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			detail.ID, detail.ProjectID, detail.Name, detail.Description, diagram,
			detail.CreatedAt, detail.UpdatedAt,
		)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("restoring model %s: %w", detail.ID, repository.ErrForeignKeyViolation)
		}
		if err != nil {
			return fmt.Errorf("failed to restore model %s: %w", detail.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	return nil
}
