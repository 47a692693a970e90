package events

import (
	"context"
	"time"

	"property-service/internal/model"

	"github.com/google/uuid"
)

// Inquiry kinds carried by InquiryCreated.
const (
	KindProperty = "property"
	KindGeneral  = "general"
)

// InquiryCreated announces a new inquiry to back-office consumers.
type InquiryCreated struct {
	EventID       string              `json:"eventId"`
	OccurredAt    time.Time           `json:"occurredAt"`
	Kind          string              `json:"kind"`
	InquiryID     string              `json:"inquiryId"`
	PropertyID    string              `json:"propertyId,omitempty"`
	PropertyTitle string              `json:"propertyTitle,omitempty"`
	InquiryType   string              `json:"inquiryType,omitempty"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Message       string              `json:"message"`
	Status        model.InquiryStatus `json:"status"`
}

// NewPropertyInquiryCreated builds the event for a property-scoped inquiry.
func NewPropertyInquiryCreated(i *model.Inquiry, propertyTitle string) InquiryCreated {
	return InquiryCreated{
		EventID:       uuid.NewString(),
		OccurredAt:    i.CreatedAt,
		Kind:          KindProperty,
		InquiryID:     i.ID,
		PropertyID:    i.PropertyID,
		PropertyTitle: propertyTitle,
		Name:          i.Name,
		Email:         i.Email,
		Phone:         i.Phone,
		Message:       i.Message,
		Status:        i.Status,
	}
}

// NewGeneralInquiryCreated builds the event for a general inquiry.
func NewGeneralInquiryCreated(g *model.GeneralInquiry) InquiryCreated {
	return InquiryCreated{
		EventID:     uuid.NewString(),
		OccurredAt:  g.CreatedAt,
		Kind:        KindGeneral,
		InquiryID:   g.ID,
		InquiryType: g.InquiryType,
		Name:        g.Name,
		Email:       g.Email,
		Phone:       g.Phone,
		Message:     g.Message,
		Status:      g.Status,
	}
}

// Publisher sends domain events.
type Publisher interface {
	PublishInquiryCreated(ctx context.Context, e InquiryCreated) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishInquiryCreated(context.Context, InquiryCreated) error { return nil }

func (NoopPublisher) Close() error { return nil }
