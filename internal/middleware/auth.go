package middleware

import (
	"context"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/auth"
	"property-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionKey = "session"

const msgNotAuthorized = "Not authorized to access this route"

// Authenticator resolves a bearer token to a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Session, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved session on the echo and request contexts.
func RequireAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Extract the bearer token
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				log.Warn("Missing or malformed Authorization header")
				return apperror.Unauthorized(msgNotAuthorized)
			}

			// Verify the token and load the account
			session, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				log.Warn("Rejected bearer token", zap.Error(err))
				return err
			}

			// Store the session for handlers
			c.Set(sessionKey, session)
			c.SetRequest(c.Request().WithContext(auth.WithSession(c.Request().Context(), session)))
			c.Set("logger", log.With(zap.String("user_id", session.UserID)))
			return next(c)
		}
	}
}

// RequireRole rejects sessions whose role is not in roles. It must follow RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				return apperror.Unauthorized(msgNotAuthorized)
			}
			if !session.HasRole(roles...) {
				logger.FromContext(c).Warn("Role not allowed",
					zap.String("role", session.Role),
					zap.Strings("allowed", roles))
				return apperror.Forbidden("User role " + session.Role + " is not authorized to access this route")
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireAuth.
func SessionFrom(c echo.Context) (auth.Session, bool) {
	if s, ok := c.Get(sessionKey).(auth.Session); ok {
		return s, true
	}
	return auth.FromContext(c.Request().Context())
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
