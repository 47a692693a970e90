package service

import (
	"context"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/events"
	"property-service/internal/model"
	"property-service/internal/repository"
	"property-service/pkg/logger"
	"property-service/prometheus"

	"go.uber.org/zap"
)

// InquiryService manages both inquiry streams.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	general    repository.GeneralInquiryRepository
	properties repository.PropertyRepository
	publisher  events.Publisher
}

// NewInquiryService wires an InquiryService. A nil publisher drops events.
func NewInquiryService(inquiries repository.InquiryRepository, general repository.GeneralInquiryRepository, properties repository.PropertyRepository, publisher events.Publisher) *InquiryService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &InquiryService{
		inquiries:  inquiries,
		general:    general,
		properties: properties,
		publisher:  publisher,
	}
}

// CreateInquiry stores an inquiry about an existing listing.
func (s *InquiryService) CreateInquiry(ctx context.Context, in *model.Inquiry) (*model.Inquiry, error) {
	in.ID, in.Status = "", ""
	in.CreatedAt, in.UpdatedAt = time.Time{}, time.Time{}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := s.inquiries.Create(ctx, in); err != nil {
		return nil, err
	}
	prometheus.RecordInquiryOperation(events.KindProperty, "create")

	log := logger.FromCtx(ctx)
	log.Info("Inquiry created",
		zap.String("inquiry_id", in.ID),
		zap.String("property_id", in.PropertyID))

	if err := s.publisher.PublishInquiryCreated(ctx, events.NewPropertyInquiryCreated(in, property.Title)); err != nil {
		log.Warn("Failed to publish inquiry event", zap.String("inquiry_id", in.ID), zap.Error(err))
	}
	return in, nil
}

// ListInquiries returns a page of inquiries with their listings expanded.
func (s *InquiryService) ListInquiries(ctx context.Context, filter model.InquiryFilter, page model.Page) ([]model.InquiryView, int64, error) {
	items, total, err := s.inquiries.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.PropertyID)
	}
	summaries, err := s.properties.Summaries(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]model.InquiryView, 0, len(items))
	for _, i := range items {
		view := model.InquiryView{Inquiry: i}
		if summary, ok := summaries[i.PropertyID]; ok {
			// the list omits the display image
			summary.DisplayImage = nil
			view.Property = &summary
		}
		views = append(views, view)
	}
	return views, total, nil
}

// GetInquiry returns one inquiry with its listing expanded.
func (s *InquiryService) GetInquiry(ctx context.Context, id string) (*model.InquiryView, error) {
	inq, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &model.InquiryView{Inquiry: *inq}

	summaries, err := s.properties.Summaries(ctx, []string{inq.PropertyID})
	if err != nil {
		return nil, err
	}
	if summary, ok := summaries[inq.PropertyID]; ok {
		view.Property = &summary
	}
	return view, nil
}

// UpdateInquiryStatus moves an inquiry to any status.
func (s *InquiryService) UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	if !model.ValidInquiryStatus(status) {
		return nil, apperror.Validation(model.InquiryStatusMessage)
	}
	inq, err := s.inquiries.UpdateStatus(ctx, id, model.InquiryStatus(status))
	if err != nil {
		return nil, err
	}
	prometheus.RecordInquiryOperation(events.KindProperty, "status_"+status)
	logger.FromCtx(ctx).Info("Inquiry status updated", zap.String("inquiry_id", id), zap.String("status", status))
	return inq, nil
}

// DeleteInquiry removes an inquiry.
func (s *InquiryService) DeleteInquiry(ctx context.Context, id string) error {
	if err := s.inquiries.Delete(ctx, id); err != nil {
		return err
	}
	prometheus.RecordInquiryOperation(events.KindProperty, "delete")
	logger.FromCtx(ctx).Info("Inquiry deleted", zap.String("inquiry_id", id))
	return nil
}

// InquiryStats counts inquiries by status.
func (s *InquiryService) InquiryStats(ctx context.Context) (model.InquiryStats, error) {
	return s.inquiries.Stats(ctx)
}

// CreateGeneralInquiry stores a general inquiry.
func (s *InquiryService) CreateGeneralInquiry(ctx context.Context, in *model.GeneralInquiry) (*model.GeneralInquiry, error) {
	in.ID, in.Status = "", ""
	in.CreatedAt, in.UpdatedAt = time.Time{}, time.Time{}
	if err := s.general.Create(ctx, in); err != nil {
		return nil, err
	}
	prometheus.RecordInquiryOperation(events.KindGeneral, "create")

	log := logger.FromCtx(ctx)
	log.Info("General inquiry created",
		zap.String("inquiry_id", in.ID),
		zap.String("inquiry_type", in.InquiryType))

	if err := s.publisher.PublishInquiryCreated(ctx, events.NewGeneralInquiryCreated(in)); err != nil {
		log.Warn("Failed to publish inquiry event", zap.String("inquiry_id", in.ID), zap.Error(err))
	}
	return in, nil
}

// ListGeneralInquiries returns a page of general inquiries.
func (s *InquiryService) ListGeneralInquiries(ctx context.Context, filter model.InquiryFilter, page model.Page) ([]model.GeneralInquiry, int64, error) {
	filter.PropertyID = ""
	return s.general.List(ctx, filter, page)
}

// GetGeneralInquiry returns one general inquiry.
func (s *InquiryService) GetGeneralInquiry(ctx context.Context, id string) (*model.GeneralInquiry, error) {
	return s.general.GetByID(ctx, id)
}

// UpdateGeneralInquiryStatus moves a general inquiry to any status.
func (s *InquiryService) UpdateGeneralInquiryStatus(ctx context.Context, id, status string) (*model.GeneralInquiry, error) {
	if !model.ValidInquiryStatus(status) {
		return nil, apperror.Validation(model.InquiryStatusMessage)
	}
	g, err := s.general.UpdateStatus(ctx, id, model.InquiryStatus(status))
	if err != nil {
		return nil, err
	}
	prometheus.RecordInquiryOperation(events.KindGeneral, "status_"+status)
	logger.FromCtx(ctx).Info("General inquiry status updated", zap.String("inquiry_id", id), zap.String("status", status))
	return g, nil
}

// DeleteGeneralInquiry removes a general inquiry.
func (s *InquiryService) DeleteGeneralInquiry(ctx context.Context, id string) error {
	if err := s.general.Delete(ctx, id); err != nil {
		return err
	}
	prometheus.RecordInquiryOperation(events.KindGeneral, "delete")
	logger.FromCtx(ctx).Info("General inquiry deleted", zap.String("inquiry_id", id))
	return nil
}

// GeneralInquiryStats counts general inquiries by status.
func (s *InquiryService) GeneralInquiryStats(ctx context.Context) (model.InquiryStats, error) {
	return s.general.Stats(ctx)
}
