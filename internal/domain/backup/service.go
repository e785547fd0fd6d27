package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/c4board/c4board/internal/repository"
)

// Service handles backup, restore and health checks.
type Service struct {
	projects ProjectLister
	models   ModelExporter
	restorer Restorer
	db       Pinger
	logger   *slog.Logger
}

// NewService creates a new backup service.
func NewService(projects ProjectLister, models ModelExporter, restorer Restorer, db Pinger, logger *slog.Logger) *Service {
	return &Service{
		projects: projects,
		models:   models,
		restorer: restorer,
		db:       db,
		logger:   logger,
	}
}

// Export dumps every project and model into an archive.
func (s *Service) Export(ctx context.Context) (*Archive, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting projects: %w", err)
	}
	models, err := s.models.AllDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting models: %w", err)
	}
	return &Archive{
		BackupVersion: Version,
		ExportedAt:    time.Now().UTC(),
		Projects:      projects,
		Models:        models,
	}, nil
}

// Import replaces all stored data with the archive's contents. The repository
// runs the replacement in one transaction, so a failure leaves prior data
// intact.
func (s *Service) Import(ctx context.Context, archive Archive) (*RestoreResult, error) {
	if archive.Projects == nil || archive.Models == nil {
		return nil, ErrInvalidPayload
	}

	if err := s.restorer.ReplaceAll(ctx, archive.Projects, archive.Models); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) || errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return nil, fmt.Errorf("restoring backup: %w", err)
	}

	s.logger.Info("backup restored",
		"projects", len(archive.Projects),
		"models", len(archive.Models))

	return &RestoreResult{
		Status:   StatusOK,
		Projects: len(archive.Projects),
		Models:   len(archive.Models),
	}, nil
}

// Status pings the database and reports reachability with the measured
// round-trip latency.
func (s *Service) Status(ctx context.Context) *StatusReport {
	start := time.Now()
	err := s.db.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	db := DBStatus{Status: StatusOK, LatencyMs: latency}
	if err != nil {
		db.Status = StatusDown
		db.Error = err.Error()
	}
	return &StatusReport{DB: db}
}
