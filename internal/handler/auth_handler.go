package handler

import (
	"net/http"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/middleware"
	"property-service/internal/service"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves login and account self-service.
type AuthHandler struct {
	auth           *service.AuthService
	maxUploadBytes int64
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, maxUploadBytes int64) *AuthHandler {
	return &AuthHandler{auth: auth, maxUploadBytes: maxUploadBytes}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateDetailsRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	// Parse credentials
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	// Verify them and issue a token
	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: token, Data: user})
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, user)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return apperror.Unauthorized("Not authorized to access this route")
	}
	user, err := h.auth.Me(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, user)
}

// UpdateDetails handles PUT /api/auth/updatedetails. It accepts JSON or a
// multipart form carrying an optional profileImage.
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return apperror.Unauthorized("Not authorized to access this route")
	}

	// Multipart carries the profile image, JSON carries fields only
	var in service.UpdateDetailsInput
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := parsePropertyForm(c)
		if err != nil {
			return err
		}
		defer form.Close()
		in.Name = form.str("name")
		in.Email = form.str("email")
		if in.ProfileImage, err = form.image(fieldProfileImage, h.maxUploadBytes); err != nil {
			return err
		}
	} else {
		var req updateDetailsRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		in.Name, in.Email = req.Name, req.Email
	}

	user, err := h.auth.UpdateDetails(c.Request().Context(), session.UserID, in)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, user)
}

// UpdatePassword handles PUT /api/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return apperror.Unauthorized("Not authorized to access this route")
	}

	// Parse and validate request
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Rotate the password and issue a fresh token
	token, err := h.auth.UpdatePassword(c.Request().Context(), session.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: token})
}
