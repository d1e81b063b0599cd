package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tapcard/internal/errors"
	"tapcard/internal/service"
)

// LinkHandler handles link collection endpoints.
type LinkHandler struct {
	linkService service.LinkService
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// AddLinkRequest represents an add-link request.
type AddLinkRequest struct {
	Title  string `json:"title" validate:"required"`
	URL    string `json:"url" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// DeleteLinkRequest represents a delete-link request.
type DeleteLinkRequest struct {
	LinkID string `json:"linkId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// AddLinkResponse represents a successful link creation.
type AddLinkResponse struct {
	Message string      `json:"message"`
	NewLink interface{} `json:"newLink"`
}

// AddLink godoc
// @Summary Add a link to the profile
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddLinkRequest true "Link data"
// @Success 201 {object} AddLinkResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /addLink [post]
func (h *LinkHandler) AddLink(c echo.Context) error {
	var req AddLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	if err := requireOwner(c, userID); err != nil {
		return err
	}

	link, err := h.linkService.AddLink(c.Request().Context(), userID, req.Title, req.URL)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AddLinkResponse{
		Message: "link added successfully",
		NewLink: link,
	})
}

// DeleteLink godoc
// @Summary Remove a link from the profile
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteLinkRequest true "Link reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /deleteLink [delete]
func (h *LinkHandler) DeleteLink(c echo.Context) error {
	var req DeleteLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	linkID, err := uuid.Parse(req.LinkID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid link ID format",
			Code:  "INVALID_UUID",
		})
	}

	if err := requireOwner(c, userID); err != nil {
		return err
	}

	if err := h.linkService.DeleteLink(c.Request().Context(), userID, linkID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "link deleted successfully",
	})
}
