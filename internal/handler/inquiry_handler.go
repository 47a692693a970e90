package handler

import (
	"net/http"

	"property-service/internal/model"
	"property-service/internal/service"

	"github.com/labstack/echo/v4"
)

// InquiryHandler serves both inquiry streams.
type InquiryHandler struct {
	inquiries *service.InquiryService
}

// NewInquiryHandler creates an InquiryHandler.
func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (r contactRequest) contact() model.Contact {
	return model.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone, Message: r.Message}
}

type inquiryRequest struct {
	contactRequest
	Property string `json:"property"`
}

type generalInquiryRequest struct {
	contactRequest
	InquiryType string `json:"inquiryType"`
}

// Create handles POST /api/inquiries
func (h *InquiryHandler) Create(c echo.Context) error {
	// Parse request
	var req inquiryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	// Save it against an existing listing
	inq, err := h.inquiries.CreateInquiry(c.Request().Context(), &model.Inquiry{
		Contact:    req.contact(),
		PropertyID: req.Property,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, inq)
}

// List handles GET /api/inquiries
func (h *InquiryHandler) List(c echo.Context) error {
	page := pageFrom(c)

	// Join each inquiry with its listing summary
	views, total, err := h.inquiries.ListInquiries(c.Request().Context(), inquiryFilterFrom(c), page)
	if err != nil {
		return err
	}
	return respondList(c, views, total, page)
}

// Get handles GET /api/inquiries/:id
func (h *InquiryHandler) Get(c echo.Context) error {
	view, err := h.inquiries.GetInquiry(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, view)
}

// UpdateStatus handles PUT /api/inquiries/:id
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	inq, err := h.inquiries.UpdateInquiryStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, inq)
}

// Delete handles DELETE /api/inquiries/:id
func (h *InquiryHandler) Delete(c echo.Context) error {
	if err := h.inquiries.DeleteInquiry(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, "Inquiry deleted successfully")
}

// Stats handles GET /api/inquiries/stats
func (h *InquiryHandler) Stats(c echo.Context) error {
	stats, err := h.inquiries.InquiryStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, stats)
}

// CreateGeneral handles POST /api/general-inquiries
func (h *InquiryHandler) CreateGeneral(c echo.Context) error {
	// Parse request
	var req generalInquiryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	g, err := h.inquiries.CreateGeneralInquiry(c.Request().Context(), &model.GeneralInquiry{
		Contact:     req.contact(),
		InquiryType: req.InquiryType,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, g)
}

// ListGeneral handles GET /api/general-inquiries
func (h *InquiryHandler) ListGeneral(c echo.Context) error {
	page := pageFrom(c)
	items, total, err := h.inquiries.ListGeneralInquiries(c.Request().Context(), inquiryFilterFrom(c), page)
	if err != nil {
		return err
	}
	return respondList(c, items, total, page)
}

// GetGeneral handles GET /api/general-inquiries/:id
func (h *InquiryHandler) GetGeneral(c echo.Context) error {
	g, err := h.inquiries.GetGeneralInquiry(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, g)
}

// UpdateGeneralStatus handles PUT /api/general-inquiries/:id
func (h *InquiryHandler) UpdateGeneralStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	g, err := h.inquiries.UpdateGeneralInquiryStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, g)
}

// DeleteGeneral handles DELETE /api/general-inquiries/:id
func (h *InquiryHandler) DeleteGeneral(c echo.Context) error {
	if err := h.inquiries.DeleteGeneralInquiry(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, "General inquiry deleted successfully")
}

// GeneralStats handles GET /api/general-inquiries/stats
func (h *InquiryHandler) GeneralStats(c echo.Context) error {
	stats, err := h.inquiries.GeneralInquiryStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, stats)
}
