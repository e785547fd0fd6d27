package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c4board/c4board/internal/domain/project"
)

// listProjects handles GET /api/projects
func (s *Server) listProjects(c echo.Context) error {
	projects, err := s.projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// createProject handles POST /api/projects
func (s *Server) createProject(c echo.Context) error {
	var req project.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := s.projects.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// updateProject handles PUT /api/projects/:id
func (s *Server) updateProject(c echo.Context) error {
	var req project.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := s.projects.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// deleteProject handles DELETE /api/projects/:id
func (s *Server) deleteProject(c echo.Context) error {
	if err := s.projects.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
