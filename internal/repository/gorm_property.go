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

type gormPropertyRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormPropertyRepository returns a PropertyRepository backed by gorm.
func NewGormPropertyRepository(db *gorm.DB) PropertyRepository {
	return &gormPropertyRepository{db: db, now: utcNow}
}

func propertyScope(f model.PropertyFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.PropertyType != "" {
			db = db.Where("property_type = ?", f.PropertyType)
		}
		if f.TransactionType != "" {
			db = db.Where("transaction_type = ?", f.TransactionType)
		}
		if f.Area != "" {
			db = db.Where("address_area = ?", f.Area)
		}
		if f.MinPrice != nil {
			db = db.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("price <= ?", *f.MaxPrice)
		}
		return db
	}
}

func (r *gormPropertyRepository) List(ctx context.Context, filter model.PropertyFilter, page model.Page) ([]model.Property, int64, error) {
	defer prometheus.TrackDBOperation("property_list")(time.Now())

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Property{}).Scopes(propertyScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	properties := []model.Property{}
	err := r.db.WithContext(ctx).
		Scopes(propertyScope(filter)).
		Order("created_at DESC").Order("id DESC").
		Offset(page.Skip()).Limit(page.Limit).
		Find(&properties).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return properties, total, nil
}

func (r *gormPropertyRepository) GetByID(ctx context.Context, id string) (*model.Property, error) {
	defer prometheus.TrackDBOperation("property_get")(time.Now())

	var p model.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgPropertyNotFound)
		}
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return &p, nil
}

func (r *gormPropertyRepository) Summaries(ctx context.Context, ids []string) (map[string]model.PropertySummary, error) {
	summaries := make(map[string]model.PropertySummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	defer prometheus.TrackDBOperation("property_summaries")(time.Now())

	var properties []model.Property
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("load property summaries: %w", err)
	}
	for i := range properties {
		summaries[properties[i].ID] = properties[i].Summary()
	}
	return summaries, nil
}

func (r *gormPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("property_create")(time.Now())

	now := r.now()
	prepareProperty(p, uuid.NewString(), now)
	if err := p.Validate(now); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (r *gormPropertyRepository) Update(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("property_update")(time.Now())

	now := r.now()
	p.Normalize()
	p.UpdatedAt = now
	if err := p.Validate(now); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("id = ?", p.ID).
		Select("*").
		Omit("id", "created_by", "created_at").
		Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update property %s: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(msgPropertyNotFound)
	}
	return nil
}

func (r *gormPropertyRepository) UpdateStatus(ctx context.Context, id string, status model.PropertyStatus) (*model.Property, error) {
	defer prometheus.TrackDBOperation("property_update_status")(time.Now())

	res := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": r.now()})
	if res.Error != nil {
		return nil, fmt.Errorf("update property status %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound(msgPropertyNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *gormPropertyRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("property_delete")(time.Now())

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Property{})
	if res.Error != nil {
		return fmt.Errorf("delete property %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(msgPropertyNotFound)
	}
	return nil
}

func (r *gormPropertyRepository) Stats(ctx context.Context, since time.Time) (model.DashboardStats, error) {
	defer prometheus.TrackDBOperation("property_stats")(time.Now())

	var stats model.DashboardStats
	counts := []struct {
		dst   *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalProperties, func(db *gorm.DB) *gorm.DB { return db }},
		{&stats.ActiveProperties, func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", model.PropertyActive) }},
		{&stats.InactiveProperties, func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", model.PropertyInactive) }},
		{&stats.PropertiesAdded, func(db *gorm.DB) *gorm.DB { return db.Where("created_at >= ?", since) }},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(&model.Property{}).Scopes(c.scope).Count(c.dst).Error; err != nil {
			return model.DashboardStats{}, fmt.Errorf("count properties: %w", err)
		}
	}
	return stats, nil
}
