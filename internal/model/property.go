package model

import (
	"fmt"
	"strings"
	"time"

	"property-service/internal/apperror"
	"property-service/pkg/validation"
)

// MaxAdditionalImages caps the gallery of a listing.
const MaxAdditionalImages = 8

// MinYearBuilt is the earliest accepted construction year.
const MinYearBuilt = 1900

// PropertyStatus is the visibility state of a listing.
type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
)

// ValidPropertyStatus reports whether s is a known listing status.
func ValidPropertyStatus(s string) bool {
	switch PropertyStatus(s) {
	case PropertyActive, PropertyInactive:
		return true
	}
	return false
}

// PropertyTypes lists the accepted propertyType values.
var PropertyTypes = []string{
	"Apartment", "Villa", "House", "Plot", "Commercial",
	"Office Space", "Shop", "Warehouse", "Farmhouse",
}

// ValidPropertyType reports whether t is one of PropertyTypes.
func ValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// TransactionTypes lists the accepted transactionType values.
var TransactionTypes = []string{"Sale", "Rent", "Lease"}

// Image is a hosted asset reference.
type Image struct {
	URL      string `json:"url" bson:"url" gorm:"type:text"`
	PublicID string `json:"publicId" bson:"publicId" gorm:"type:varchar(255)"`
}

// Empty reports whether the image has no asset behind it.
func (i Image) Empty() bool {
	return i.URL == "" && i.PublicID == ""
}

// Address of a listing. State and City are fixed by deployment.
type Address struct {
	State       string `json:"state" bson:"state" gorm:"type:varchar(100)" validate:"required"`
	City        string `json:"city" bson:"city" gorm:"type:varchar(100)" validate:"required"`
	Area        string `json:"area" bson:"area" gorm:"type:varchar(200);index" validate:"required"`
	FullAddress string `json:"fullAddress" bson:"fullAddress" gorm:"type:text" validate:"required"`
	PinCode     string `json:"pinCode" bson:"pinCode" gorm:"type:varchar(6)" validate:"pincode"`
}

// Property is a real-estate listing.
type Property struct {
	ID               string         `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	PropertyType     string         `json:"propertyType" bson:"propertyType" gorm:"type:varchar(50);index;not null" validate:"required"`
	Title            string         `json:"title" bson:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Price            float64        `json:"price" bson:"price" gorm:"not null;index" validate:"gte=0"`
	TransactionType  string         `json:"transactionType" bson:"transactionType" gorm:"type:varchar(20);index;not null" validate:"required,oneof=Sale Rent Lease"`
	Area             float64        `json:"area" bson:"area" gorm:"not null" validate:"gte=0"`
	Description      string         `json:"description" bson:"description" gorm:"type:text;not null" validate:"required"`
	YearBuilt        *int           `json:"yearBuilt,omitempty" bson:"yearBuilt,omitempty"`
	KeyFeatures      []string       `json:"keyFeatures" bson:"keyFeatures" gorm:"type:text;serializer:json"`
	Status           PropertyStatus `json:"status" bson:"status" gorm:"type:varchar(20);index;not null;default:active" validate:"required,oneof=active inactive"`
	DisplayImage     Image          `json:"displayImage" bson:"displayImage" gorm:"embedded;embeddedPrefix:display_image_"`
	AdditionalImages []Image        `json:"additionalImages" bson:"additionalImages" gorm:"type:text;serializer:json"`
	Address          Address        `json:"address" bson:"address" gorm:"embedded;embeddedPrefix:address_" validate:"required"`
	CreatedBy        string         `json:"createdBy" bson:"createdBy" gorm:"type:varchar(36);index;not null"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Normalize trims text fields and replaces nil collections with empty ones.
func (p *Property) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Address.Area = strings.TrimSpace(p.Address.Area)
	p.Address.FullAddress = strings.TrimSpace(p.Address.FullAddress)
	p.Address.PinCode = strings.TrimSpace(p.Address.PinCode)
	p.KeyFeatures = NormalizeFeatures(p.KeyFeatures)
	if p.AdditionalImages == nil {
		p.AdditionalImages = []Image{}
	}
}

// ValidateFields checks every field except the image set.
func (p *Property) ValidateFields(now time.Time) error {
	var messages []string
	if err := validation.Struct(p); err != nil {
		messages = append(messages, err.Error())
	}
	if p.PropertyType != "" && !ValidPropertyType(p.PropertyType) {
		messages = append(messages, fmt.Sprintf("propertyType must be one of: %s", strings.Join(PropertyTypes, ", ")))
	}
	if p.YearBuilt != nil && (*p.YearBuilt < MinYearBuilt || *p.YearBuilt > now.Year()) {
		messages = append(messages, fmt.Sprintf("yearBuilt must be between %d and %d", MinYearBuilt, now.Year()))
	}
	if len(messages) > 0 {
		return apperror.Validation(strings.Join(messages, ", "))
	}
	return nil
}

// Validate checks the whole record, images included.
func (p *Property) Validate(now time.Time) error {
	if err := p.ValidateFields(now); err != nil {
		return err
	}
	if p.DisplayImage.URL == "" || p.DisplayImage.PublicID == "" {
		return apperror.Validation("Display image is required")
	}
	if len(p.AdditionalImages) > MaxAdditionalImages {
		return apperror.Validationf("Maximum %d additional images allowed", MaxAdditionalImages)
	}
	return nil
}

// Images returns the display image followed by the additional images.
func (p *Property) Images() []Image {
	images := make([]Image, 0, 1+len(p.AdditionalImages))
	if !p.DisplayImage.Empty() {
		images = append(images, p.DisplayImage)
	}
	return append(images, p.AdditionalImages...)
}

// Summary projects the fields shown next to an inquiry.
func (p *Property) Summary() PropertySummary {
	display := p.DisplayImage
	return PropertySummary{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Address:      p.Address,
		DisplayImage: &display,
	}
}

// Clone returns a copy that shares no slices with p.
func (p *Property) Clone() *Property {
	c := *p
	if p.KeyFeatures != nil {
		c.KeyFeatures = append([]string{}, p.KeyFeatures...)
	}
	if p.AdditionalImages != nil {
		c.AdditionalImages = append([]Image{}, p.AdditionalImages...)
	}
	if p.YearBuilt != nil {
		y := *p.YearBuilt
		c.YearBuilt = &y
	}
	return &c
}

// PropertyView is a listing with its creator expanded for display.
// Creator is nil when the account no longer exists.
type PropertyView struct {
	Property
	Creator *UserSummary `json:"createdBy"`
}

// PropertySummary is the read-only projection joined onto inquiries.
type PropertySummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Address      Address `json:"address"`
	DisplayImage *Image  `json:"displayImage,omitempty"`
}

// NormalizeFeatures trims tags, drops blanks and duplicates, keeping first-seen order.
func NormalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// PropertyFilter holds the recognized listing filters. Zero values mean "no filter".
type PropertyFilter struct {
	Status          string
	PropertyType    string
	TransactionType string
	Area            string
	MinPrice        *float64
	MaxPrice        *float64
}

// DashboardStats aggregates listing counts.
type DashboardStats struct {
	TotalProperties    int64 `json:"totalProperties"`
	ActiveProperties   int64 `json:"activeProperties"`
	InactiveProperties int64 `json:"inactiveProperties"`
	PropertiesAdded    int64 `json:"propertiesAdded"`
}
