package repository

import (
	"context"

	"property-service/internal/model"
	"property-service/pkg/database"

	"gorm.io/gorm"
)

// Models lists every table the gorm backend owns.
func Models() []interface{} {
	return []interface{}{
		&model.Property{},
		&model.Inquiry{},
		&model.GeneralInquiry{},
		&model.User{},
	}
}

// NewGormStores migrates the schema and returns the gorm-backed repositories.
func NewGormStores(db *gorm.DB) (*Stores, error) {
	if err := database.MigrateModels(db, Models()...); err != nil {
		return nil, err
	}
	return &Stores{
		Properties:       NewGormPropertyRepository(db),
		Inquiries:        NewGormInquiryRepository(db),
		GeneralInquiries: NewGormGeneralInquiryRepository(db),
		Users:            NewGormUserRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func(context.Context) error {
			return database.Close(db)
		},
	}, nil
}
