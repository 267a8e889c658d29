package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List godoc
// @Summary List all projects
// @Tags projects
// @Produce json
// @Success 200 {array} model.Project
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list projects: %v", err)
		return storageError(err, "Error fetching projects")
	}
	return c.JSON(http.StatusOK, projects)
}

// Update godoc
// @Summary Update project fields
// @Description Overwrites only the fields present in the body. Unknown ids succeed without effect.
// @Tags projects
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Project ID"
// @Param request body model.ProjectPatch true "Fields to overwrite"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid project ID",
			Code:    "INVALID_ID",
		})
	}

	patch, err := decodePatch(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if patch.ID != nil && *patch.ID != id {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "project ID in body does not match path",
			Code:    "INVALID_PATCH",
		})
	}

	if err := h.projectService.Update(c.Request().Context(), id, patch); err != nil {
		c.Logger().Errorf("update project %d: %v", id, err)
		return storageError(err, "Error updating project")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Project updated successfully"})
}

// decodePatch reads the body strictly: unknown fields and mistyped values
// are rejected before anything reaches the store.
func decodePatch(c echo.Context) (*model.ProjectPatch, error) {
	var patch model.ProjectPatch
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPatch, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", errors.ErrInvalidPatch)
	}
	if err := c.Validate(&patch); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPatch, err)
	}
	return &patch, nil
}

func storageError(err error, message string) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		httpErr.Message = message
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
