package handler

import (
	"net/http"

	"property-service/internal/middleware"
	"property-service/internal/service"
	"property-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PropertyHandler serves the listing routes.
type PropertyHandler struct {
	listings       *service.ListingService
	maxUploadBytes int64
}

// NewPropertyHandler creates a PropertyHandler. Uploads above maxUploadBytes are rejected.
func NewPropertyHandler(listings *service.ListingService, maxUploadBytes int64) *PropertyHandler {
	return &PropertyHandler{listings: listings, maxUploadBytes: maxUploadBytes}
}

type statusRequest struct {
	Status string `json:"status"`
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c echo.Context) error {
	// Parse filters and pagination
	filter, err := propertyFilterFrom(c)
	if err != nil {
		return err
	}
	page := pageFrom(c)

	// Load the page with creators expanded
	result, err := h.listings.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return respondList(c, result.Items, result.Total, page)
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, p)
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	// Parse the multipart form
	form, err := parsePropertyForm(c)
	if err != nil {
		return err
	}
	defer form.Close()

	cmd, err := form.createCommand(h.maxUploadBytes)
	if err != nil {
		log.Warn("Rejected property form", zap.Error(err))
		return err
	}
	// Record the signed-in admin as creator
	if session, ok := middleware.SessionFrom(c); ok {
		cmd.CreatedBy = session.UserID
	}

	// Upload images and save the listing
	p, err := h.listings.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, p)
}

// Update handles PUT /api/properties/:id
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	// Parse the multipart form
	form, err := parsePropertyForm(c)
	if err != nil {
		return err
	}
	defer form.Close()

	cmd, err := form.updateCommand(h.maxUploadBytes)
	if err != nil {
		log.Warn("Rejected property form", zap.String("property_id", c.Param("id")), zap.Error(err))
		return err
	}

	// Apply the changes, then drop superseded images
	p, err := h.listings.Update(c.Request().Context(), c.Param("id"), cmd)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, p)
}

// UpdateStatus handles PATCH /api/properties/:id/status
func (h *PropertyHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	p, err := h.listings.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, p)
}

// Delete handles DELETE /api/properties/:id
func (h *PropertyHandler) Delete(c echo.Context) error {
	if err := h.listings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, "Property deleted successfully")
}

// DashboardStats handles GET /api/properties/stats/dashboard
func (h *PropertyHandler) DashboardStats(c echo.Context) error {
	stats, err := h.listings.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, stats)
}
