package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"property-service/internal/handler"
	"property-service/pkg/logger"
	"property-service/prometheus"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP API on SERVER_PORT, or on --port when given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on, overrides SERVER_PORT")

	return cmd
}

func runServe(ctx context.Context, port string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+serviceName, cfg.LogConfig()...)

	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Warn("Failed to close backends", zap.Error(err))
		}
	}()
	log.Info("Database connection established", zap.String("driver", cfg.DB.Driver))

	maxUpload := cfg.Media.MaxUploadBytes
	e := handler.NewServer(handler.ServerOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
		BodyLimit:   "50M",
	}, handler.Router{
		Properties:    handler.NewPropertyHandler(a.listings, maxUpload),
		Inquiries:     handler.NewInquiryHandler(a.inquiries),
		Auth:          handler.NewAuthHandler(a.auth, maxUpload),
		Health:        handler.NewHealthHandler(a.stores.Ping),
		Authenticator: a.auth,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
