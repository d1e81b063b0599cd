package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tapcard/internal/errors"
	"tapcard/internal/service"
)

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents a partial profile update. Absent fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Occupation     *string `json:"occupation" validate:"omitempty,max=255"`
}

// UpdateAboutRequest represents an about-text update.
type UpdateAboutRequest struct {
	AboutMe string `json:"aboutMe" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

// GetProfile godoc
// @Summary Get own profile with resolved links
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// GetPublicProfile godoc
// @Summary Get a public profile by id (no auth)
// @Tags profile
// @Produce json
// @Param id query string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [get]
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	user, err := h.profileService.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Partially update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	if err := requireOwner(c, userID); err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), userID, service.ProfileUpdate{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
		Phone:          req.Phone,
		Occupation:     req.Occupation,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateAbout godoc
// @Summary Overwrite the about-me text
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAboutRequest true "About text"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /aboutMe [put]
func (h *ProfileHandler) UpdateAbout(c echo.Context) error {
	var req UpdateAboutRequest
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

	if err := h.profileService.UpdateAbout(c.Request().Context(), userID, req.AboutMe); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "about me updated successfully",
	})
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param userId formData string true "User ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID, err := uuid.Parse(c.FormValue("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID format",
			Code:  "INVALID_UUID",
		})
	}

	if err := requireOwner(c, userID); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image file is required",
			Code:  "MISSING_FILE",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to read uploaded file",
			Code:  "INTERNAL_ERROR",
		})
	}
	defer file.Close()

	url, err := h.profileService.UpdateAvatar(
		c.Request().Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":        "profile picture updated successfully",
		"profilePicture": url,
	})
}

// requireOwner rejects requests whose token subject differs from the target
// user (owner-of-record authorization).
func requireOwner(c echo.Context, userID uuid.UUID) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if callerID != userID {
		httpErr := errors.MapErrorToHTTP(errors.ErrNotOwner)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return nil
}
