package cli

import (
	"context"
	"errors"
	"fmt"

	"property-service/internal/events"
	"property-service/internal/media"
	"property-service/internal/repository"
	"property-service/internal/service"
	"property-service/pkg/cache"
	"property-service/pkg/config"
	"property-service/pkg/database"
	"property-service/pkg/jwtutil"
	"property-service/pkg/logger"

	"go.uber.org/zap"
)

const serviceName = "property-service"

// app holds the wired backends and services shared by every subcommand.
type app struct {
	cfg       *config.Config
	stores    *repository.Stores
	media     media.Store
	listings  *service.ListingService
	inquiries *service.InquiryService
	auth      *service.AuthService
	closers   []func(context.Context) error
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagDriver != "" {
		cfg.DB.Driver = flagDriver
	}
	if flagSQLitePath != "" {
		cfg.DB.SQLitePath = flagSQLitePath
	}
	switch cfg.DB.Driver {
	case config.DriverPostgres, config.DriverSQLite, config.DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// newApp opens the configured store and builds the services on top of it.
// Redis and RabbitMQ are optional; when they cannot be reached the app runs
// without a listing cache or without inquiry notifications.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logger.GetLogger()
	a := &app{cfg: cfg}

	stores, err := openStores(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}
	a.stores = stores
	a.closers = append(a.closers, stores.Close)

	if cfg.Media.Enabled() {
		store, err := media.NewCloudinaryStore(&cfg.Media)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.media = store
	} else {
		log.Warn("Cloudinary credentials not set, keeping uploads in memory")
		a.media = media.NewMemoryStore("memory://" + cfg.Media.Folder)
	}

	var listingCache cache.Cache
	if cfg.Cache.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, &cfg.Cache)
		if err != nil {
			log.Warn("Listing cache unavailable, continuing without it", zap.Error(err))
		} else {
			listingCache = rc
			a.closers = append(a.closers, func(context.Context) error { return rc.Close() })
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.URL != "" {
		rp, err := events.NewRabbitPublisher(&cfg.Events)
		if err != nil {
			log.Warn("Event publisher unavailable, inquiries will not be announced", zap.Error(err))
		} else {
			publisher = rp
			a.closers = append(a.closers, func(context.Context) error { return rp.Close() })
		}
	}

	a.listings = service.NewListingService(stores.Properties, stores.Users, a.media, listingCache, cfg.Site)
	a.inquiries = service.NewInquiryService(stores.Inquiries, stores.GeneralInquiries, stores.Properties, publisher)
	a.auth = service.NewAuthService(stores.Users, jwtutil.NewJWTUtil(&cfg.JWT), a.media)
	return a, nil
}

func openStores(ctx context.Context, dbConfig *config.DBConfig) (*repository.Stores, error) {
	if dbConfig.Driver == config.DriverMongo {
		client, db, err := database.ConnectMongo(ctx, dbConfig)
		if err != nil {
			return nil, err
		}
		stores, err := repository.NewMongoStores(ctx, client, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return stores, nil
	}

	db, err := database.InitDB(dbConfig)
	if err != nil {
		return nil, err
	}
	stores, err := repository.NewGormStores(db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return stores, nil
}

// Close releases the backends in reverse order of opening.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
