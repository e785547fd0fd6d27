package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c4board/c4board/internal/domain/model"
)

// listModels handles GET /api/projects/:id/models
func (s *Server) listModels(c echo.Context) error {
	summaries, err := s.models.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// createModel handles POST /api/projects/:id/models
func (s *Server) createModel(c echo.Context) error {
	var req model.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := s.models.Create(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// getModel handles GET /api/models/:id
func (s *Server) getModel(c echo.Context) error {
	detail, err := s.models.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// updateModel handles PUT /api/models/:id
func (s *Server) updateModel(c echo.Context) error {
	var req model.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := s.models.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// deleteModel handles DELETE /api/models/:id
func (s *Server) deleteModel(c echo.Context) error {
	if err := s.models.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
