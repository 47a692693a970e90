package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/auth"
	"property-service/internal/media"
	"property-service/internal/model"
	"property-service/internal/repository"
	"property-service/pkg/jwtutil"
	"property-service/pkg/logger"
	"property-service/pkg/validation"
	"property-service/prometheus"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid credentials"

// RegisterInput is a new account request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateDetailsInput edits the caller's own profile. Nil fields are left alone.
type UpdateDetailsInput struct {
	Name         *string
	Email        *string
	ProfileImage *media.File
}

// AuthService issues credentials and manages accounts.
type AuthService struct {
	users  repository.UserRepository
	tokens *jwtutil.JWTUtil
	media  media.Store
	cost   int
}

// NewAuthService wires an AuthService.
func NewAuthService(users repository.UserRepository, tokens *jwtutil.JWTUtil, store media.Store) *AuthService {
	return &AuthService{users: users, tokens: tokens, media: store, cost: bcrypt.DefaultCost}
}

// Login checks a password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	log := logger.FromCtx(ctx)

	if strings.TrimSpace(email) == "" || password == "" {
		return "", nil, apperror.Validation("Please provide an email and password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			prometheus.RecordAuthAttempt(false)
			log.Warn("Login with unknown email", zap.String("email", model.NormalizeEmail(email)))
			return "", nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		prometheus.RecordAuthAttempt(false)
		log.Warn("Login with wrong password", zap.String("user_id", u.ID))
		return "", nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, apperror.Internal("generate token", err)
	}
	prometheus.RecordAuthAttempt(true)
	log.Info("User logged in", zap.String("user_id", u.ID))
	return token, u, nil
}

// Register creates an account. Role defaults to admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = model.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if in.Role == "" {
		in.Role = model.RoleAdmin
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("User already exists with this email")
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Name: in.Name, Email: in.Email, Password: hash, Role: in.Role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("User registered", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// EnsureAdmin creates an admin account unless the email is already registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}

	u, err := s.Register(ctx, RegisterInput{Name: name, Email: email, Password: password, Role: model.RoleAdmin})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// Authenticate resolves a bearer token to a session. The account must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (auth.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return auth.Session{}, apperror.Unauthorized("Not authorized to access this route")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return auth.Session{}, apperror.Unauthorized("Not authorized to access this route")
		}
		return auth.Session{}, err
	}

	return auth.Session{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

// Me returns the account behind a session.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateDetails edits name, email and profile image. A replaced profile
// image is deleted only after the record is saved.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, in UpdateDetailsInput) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			u.Name = name
		}
	}
	if in.Email != nil {
		if email := model.NormalizeEmail(*in.Email); email != "" {
			u.Email = email
		}
	}
	if err := validation.Struct(u); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	var old *model.Image
	if in.ProfileImage != nil {
		img, err := s.media.Upload(ctx, *in.ProfileImage)
		if err != nil {
			return nil, apperror.Internal("upload profile image", err)
		}
		old = u.ProfileImage
		u.ProfileImage = &img
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if old != nil && old.PublicID != "" {
		if err := s.media.Delete(ctx, old.PublicID); err != nil {
			logger.FromCtx(ctx).Warn("Failed to delete profile image",
				zap.String("user_id", u.ID),
				zap.String("public_id", old.PublicID),
				zap.Error(err))
		}
	}
	return u, nil
}

// UpdatePassword changes the password after checking the current one and returns a fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (string, error) {
	if len(next) < 6 {
		return "", apperror.Validation("newPassword must be at least 6 characters")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)); err != nil {
		return "", apperror.Unauthorized("Password is incorrect")
	}

	hash, err := s.hash(next)
	if err != nil {
		return "", err
	}
	u.Password = hash
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", apperror.Internal("generate token", err)
	}
	logger.FromCtx(ctx).Info("Password updated", zap.String("user_id", u.ID))
	return token, nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.Validation("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
