package model

import (
	"strings"
	"time"

	"property-service/internal/apperror"
	"property-service/pkg/validation"
)

// InquiryStatus is the lifecycle state of an inquiry. Transitions are unrestricted.
type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "New"
	InquiryResponded InquiryStatus = "Responded"
	InquiryClosed    InquiryStatus = "Closed"
)

// ValidInquiryStatus reports whether s is a known inquiry status.
func ValidInquiryStatus(s string) bool {
	switch InquiryStatus(s) {
	case InquiryNew, InquiryResponded, InquiryClosed:
		return true
	}
	return false
}

// Contact holds the fields shared by both inquiry kinds.
type Contact struct {
	Name    string `json:"name" bson:"name" gorm:"type:varchar(200);not null" validate:"required"`
	Email   string `json:"email" bson:"email" gorm:"type:varchar(255);index;not null" validate:"required,email"`
	Phone   string `json:"phone" bson:"phone" gorm:"type:varchar(30);not null" validate:"required"`
	Message string `json:"message" bson:"message" gorm:"type:text;not null" validate:"required"`
}

func (c *Contact) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Message = strings.TrimSpace(c.Message)
}

// Inquiry is a contact request about one listing.
type Inquiry struct {
	ID         string `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Contact    `bson:",inline" gorm:"embedded"`
	PropertyID string        `json:"property" bson:"property" gorm:"column:property_id;type:varchar(36);index;not null" validate:"required"`
	Status     InquiryStatus `json:"status" bson:"status" gorm:"type:varchar(20);index;not null;default:New"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt  time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// GeneralInquiry is a contact request not tied to a listing.
type GeneralInquiry struct {
	ID          string `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Contact     `bson:",inline" gorm:"embedded"`
	InquiryType string        `json:"inquiryType,omitempty" bson:"inquiryType,omitempty" gorm:"type:varchar(100)"`
	Status      InquiryStatus `json:"status" bson:"status" gorm:"type:varchar(20);index;not null;default:New"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// InquiryRecord is implemented by both inquiry kinds so the stores can share code.
type InquiryRecord interface {
	GetID() string
	Prepare(id string, now time.Time)
	Validate() error
}

func (i *Inquiry) GetID() string { return i.ID }

// Prepare assigns identity, default status and timestamps for a new record.
func (i *Inquiry) Prepare(id string, now time.Time) {
	if i.ID == "" {
		i.ID = id
	}
	if i.Status == "" {
		i.Status = InquiryNew
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

func (i *Inquiry) Validate() error {
	i.Contact.normalize()
	i.PropertyID = strings.TrimSpace(i.PropertyID)
	return validateInquiry(i, i.Status)
}

func (g *GeneralInquiry) GetID() string { return g.ID }

func (g *GeneralInquiry) Prepare(id string, now time.Time) {
	if g.ID == "" {
		g.ID = id
	}
	if g.Status == "" {
		g.Status = InquiryNew
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
}

func (g *GeneralInquiry) Validate() error {
	g.Contact.normalize()
	g.InquiryType = strings.TrimSpace(g.InquiryType)
	return validateInquiry(g, g.Status)
}

func validateInquiry(record any, status InquiryStatus) error {
	if err := validation.Struct(record); err != nil {
		return apperror.Validation(err.Error())
	}
	if status != "" && !ValidInquiryStatus(string(status)) {
		return apperror.Validation(InquiryStatusMessage)
	}
	return nil
}

// InquiryStatusMessage is returned for an unknown inquiry status.
const InquiryStatusMessage = "Status must be New, Responded, or Closed"

// InquiryView is an inquiry with its listing expanded for display.
// Property is nil when the listing no longer exists.
type InquiryView struct {
	Inquiry
	Property *PropertySummary `json:"property"`
}

// InquiryFilter holds the recognized inquiry filters.
type InquiryFilter struct {
	Status     string
	PropertyID string
}

// InquiryStats aggregates inquiry counts by status.
type InquiryStats struct {
	TotalInquiries     int64 `json:"totalInquiries"`
	NewInquiries       int64 `json:"newInquiries"`
	RespondedInquiries int64 `json:"respondedInquiries"`
	ClosedInquiries    int64 `json:"closedInquiries"`
}
