package repository

import (
	"context"
	"time"

	"property-service/internal/model"
)

// PropertyRepository persists listings.
type PropertyRepository interface {
	// List returns one page of listings, newest first, and the total match count.
	List(ctx context.Context, filter model.PropertyFilter, page model.Page) ([]model.Property, int64, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	// Summaries loads the inquiry projections of the given listings, keyed by id. Missing ids are skipped.
	Summaries(ctx context.Context, ids []string) (map[string]model.PropertySummary, error)
	Create(ctx context.Context, p *model.Property) error
	// Update replaces every mutable field of an existing listing and refreshes UpdatedAt.
	Update(ctx context.Context, p *model.Property) error
	UpdateStatus(ctx context.Context, id string, status model.PropertyStatus) (*model.Property, error)
	Delete(ctx context.Context, id string) error
	// Stats counts listings, those created at or after since included.
	Stats(ctx context.Context, since time.Time) (model.DashboardStats, error)
}

// InquiryStore persists one inquiry stream.
type InquiryStore[T any] interface {
	Create(ctx context.Context, record *T) error
	List(ctx context.Context, filter model.InquiryFilter, page model.Page) ([]T, int64, error)
	GetByID(ctx context.Context, id string) (*T, error)
	UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (*T, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.InquiryStats, error)
}

// InquiryRepository persists property-scoped inquiries.
type InquiryRepository = InquiryStore[model.Inquiry]

// GeneralInquiryRepository persists general inquiries.
type GeneralInquiryRepository = InquiryStore[model.GeneralInquiry]

// UserRepository persists back-office accounts.
type UserRepository interface {
	// Create fails with a Conflict error when the email is taken.
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Summaries loads the creator projections of the given accounts, keyed by id. Missing ids are skipped.
	Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error)
	Update(ctx context.Context, u *model.User) error
}

// Stores bundles one backend's repositories.
type Stores struct {
	Properties       PropertyRepository
	Inquiries        InquiryRepository
	GeneralInquiries GeneralInquiryRepository
	Users            UserRepository
	// Ping checks that the backend is reachable.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}

// Error messages shared by both backends.
const (
	msgPropertyNotFound       = "Property not found"
	msgInquiryNotFound        = "Inquiry not found"
	msgGeneralInquiryNotFound = "General inquiry not found"
	msgUserNotFound           = "User not found"
	msgEmailTaken             = "User already exists with this email"
)

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func prepareProperty(p *model.Property, id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	if p.Status == "" {
		p.Status = model.PropertyActive
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.Normalize()
}
