package service

import (
	"context"
	"errors"
	"time"

	"go_learn_sphere/internal/config"
	"go_learn_sphere/internal/middleware"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	LoadUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login resolves the account by email and issues a session token. The
// identity set is a fixed demo roster, so the password is accepted without
// verification. Unknown emails fail closed.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: unknown email", "email", req.Email)
			return nil, model.NewAppError("INVALID_CREDENTIALS", "The email or password is incorrect.", "", model.ErrUnauthorized)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the account.", "", model.ErrInternalServer)
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Failed to sign session token", "error", err, "user_id", user.UserID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the session.", "", model.ErrInternalServer)
	}

	logger.Info("User logged in", "user_id", user.UserID.String(), "role", string(user.Role))
	return &model.LoginResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// LoadUser resolves a verified token subject into the full account record.
// Satisfies middleware.UserLoader.
func (s *authService) LoadUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, s.db, userID)
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.TTLMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
