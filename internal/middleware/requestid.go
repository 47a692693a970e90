package middleware

import (
	"property-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags each request with an id, reusing one sent by the caller,
// and stores a logger carrying it on both the echo and request contexts.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Reuse the caller's request ID when it looks sane
		requestID := c.Request().Header.Get(HeaderRequestID)

		// Otherwise generate a unique one
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}

		// Add to request and response headers
		c.Request().Header.Set(HeaderRequestID, requestID)
		c.Response().Header().Set(HeaderRequestID, requestID)
		c.Set("request_id", requestID)

		// Attach a request-scoped logger for handlers and services
		log := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set("logger", log)
		c.SetRequest(c.Request().WithContext(logger.WithCtx(c.Request().Context(), log)))

		// Call the next handler
		return next(c)
	}
}
