package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c4board/c4board/internal/domain/backup"
)

// exportBackup handles GET /api/backup
func (s *Server) exportBackup(c echo.Context) error {
	archive, err := s.backups.Export(c.Request().Context())
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("c4board-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, archive)
}

// restoreBackup handles POST /api/restore
func (s *Server) restoreBackup(c echo.Context) error {
	var archive backup.Archive
	if err := c.Bind(&archive); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid backup payload")
	}

	result, err := s.backups.Import(c.Request().Context(), archive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// status handles GET /api/status. A failing database probe yields 503 so load
// balancers and the CLI can treat the instance as unavailable.
func (s *Server) status(c echo.Context) error {
	report := s.backups.Status(c.Request().Context())
	code := http.StatusOK
	if report.DB.Status != backup.StatusOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}
