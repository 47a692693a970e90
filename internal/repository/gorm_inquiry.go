package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/model"
	"property-service/prometheus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type inquiryRecord[T any] interface {
	*T
	model.InquiryRecord
}

type gormInquiryStore[T any, PT inquiryRecord[T]] struct {
	db       *gorm.DB
	now      func() time.Time
	name     string
	notFound string
}

// NewGormInquiryRepository returns the property-scoped inquiry store backed by gorm.
func NewGormInquiryRepository(db *gorm.DB) InquiryRepository {
	return &gormInquiryStore[model.Inquiry, *model.Inquiry]{db: db, now: utcNow, name: "inquiry", notFound: msgInquiryNotFound}
}

// NewGormGeneralInquiryRepository returns the general inquiry store backed by gorm.
func NewGormGeneralInquiryRepository(db *gorm.DB) GeneralInquiryRepository {
	return &gormInquiryStore[model.GeneralInquiry, *model.GeneralInquiry]{db: db, now: utcNow, name: "general_inquiry", notFound: msgGeneralInquiryNotFound}
}

func inquiryScope(f model.InquiryFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.PropertyID != "" {
			db = db.Where("property_id = ?", f.PropertyID)
		}
		return db
	}
}

func (s *gormInquiryStore[T, PT]) Create(ctx context.Context, record *T) error {
	defer prometheus.TrackDBOperation(s.name + "_create")(time.Now())

	rec := PT(record)
	rec.Prepare(uuid.NewString(), s.now())
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

func (s *gormInquiryStore[T, PT]) List(ctx context.Context, filter model.InquiryFilter, page model.Page) ([]T, int64, error) {
	defer prometheus.TrackDBOperation(s.name + "_list")(time.Now())

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Scopes(inquiryScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.name, err)
	}

	records := []T{}
	err := s.db.WithContext(ctx).
		Scopes(inquiryScope(filter)).
		Order("created_at DESC").Order("id DESC").
		Offset(page.Skip()).Limit(page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.name, err)
	}
	return records, total, nil
}

func (s *gormInquiryStore[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	defer prometheus.TrackDBOperation(s.name + "_get")(time.Now())

	record := new(T)
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(s.notFound)
		}
		return nil, fmt.Errorf("get %s %s: %w", s.name, id, err)
	}
	return record, nil
}

func (s *gormInquiryStore[T, PT]) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (*T, error) {
	defer prometheus.TrackDBOperation(s.name + "_update_status")(time.Now())

	res := s.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": s.now()})
	if res.Error != nil {
		return nil, fmt.Errorf("update %s status %s: %w", s.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound(s.notFound)
	}
	return s.GetByID(ctx, id)
}

func (s *gormInquiryStore[T, PT]) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation(s.name + "_delete")(time.Now())

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s %s: %w", s.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(s.notFound)
	}
	return nil
}

func (s *gormInquiryStore[T, PT]) Stats(ctx context.Context) (model.InquiryStats, error) {
	defer prometheus.TrackDBOperation(s.name + "_stats")(time.Now())

	var stats model.InquiryStats
	counts := []struct {
		dst    *int64
		status model.InquiryStatus
	}{
		{&stats.TotalInquiries, ""},
		{&stats.NewInquiries, model.InquiryNew},
		{&stats.RespondedInquiries, model.InquiryResponded},
		{&stats.ClosedInquiries, model.InquiryClosed},
	}
	for _, c := range counts {
		filter := model.InquiryFilter{Status: string(c.status)}
		if err := s.db.WithContext(ctx).Model(new(T)).Scopes(inquiryScope(filter)).Count(c.dst).Error; err != nil {
			return model.InquiryStats{}, fmt.Errorf("count %s: %w", s.name, err)
		}
	}
	return stats, nil
}
