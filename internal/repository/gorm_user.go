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

type gormUserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUserRepository returns a UserRepository backed by gorm.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db, now: utcNow}
}

func (r *gormUserRepository) Create(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("user_create")(time.Now())

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = model.NormalizeEmail(u.Email)
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(msgEmailTaken)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", model.NormalizeEmail(email))
}

func (r *gormUserRepository) Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	summaries := make(map[string]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	defer prometheus.TrackDBOperation("user_summaries")(time.Now())

	var users []model.User
	if err := r.db.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load user summaries: %w", err)
	}
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_get")(time.Now())

	var u model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *gormUserRepository) Update(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("user_update")(time.Now())

	u.Email = model.NormalizeEmail(u.Email)
	u.UpdatedAt = r.now()

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", u.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(msgEmailTaken)
		}
		return fmt.Errorf("update user %s: %w", u.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(msgUserNotFound)
	}
	return nil
}
