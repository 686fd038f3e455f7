package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_learn_sphere/internal/config"
	"go_learn_sphere/internal/model"
	"go_learn_sphere/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserLoader resolves a user ID from a verified token into the full user
// record. Implemented by the auth service.
type UserLoader interface {
	LoadUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// resolveBearerUser verifies the Authorization bearer token and loads the
// matching user. Returns an AppError describing the first failure.
func resolveBearerUser(r *http.Request, cfg *config.Config, loader UserLoader) (*model.User, *model.AppError) {
	logger := GetLogger(r.Context())

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized)
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		logger.Warn("JWT auth failed: invalid Authorization header format")
		return nil, model.NewAppError("UNAUTHORIZED", "Authorization header must be a bearer token.", "", model.ErrUnauthorized)
	}
	tokenString := headerParts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		logger.Warn("JWT auth failed: invalid token", "error", err)
		return nil, model.NewAppError("INVALID_TOKEN", "The session token is invalid or expired.", "", model.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		logger.Warn("JWT auth failed: unknown claims type")
		return nil, model.NewAppError("INVALID_TOKEN", "The session token is invalid.", "", model.ErrUnauthorized)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		logger.Warn("JWT auth failed: subject claim missing", "error", err)
		return nil, model.NewAppError("INVALID_TOKEN", "The session token carries no identity.", "", model.ErrUnauthorized)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		logger.Warn("JWT auth failed: invalid subject format", "subject", subject)
		return nil, model.NewAppError("INVALID_TOKEN", "The session token identity is malformed.", "", model.ErrUnauthorized)
	}

	user, err := loader.LoadUser(r.Context(), userID)
	if err != nil {
		logger.Warn("JWT auth failed: user not found", "user_id", userID.String(), "error", err)
		return nil, model.NewAppError("UNAUTHORIZED", "The session user no longer exists.", "", model.ErrUnauthorized)
	}
	return user, nil
}

// JWTAuthMiddleware validates the Authorization bearer token, loads the user
// and stores it in the request context.
func JWTAuthMiddleware(cfg *config.Config, loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, appErr := resolveBearerUser(r, cfg, loader)
			if appErr != nil {
				webutil.HandleError(w, GetLogger(r.Context()), appErr)
				return
			}
			ctx := context.WithValue(r.Context(), model.UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTAuthMiddleware loads the user into the context when a valid
// bearer token is present, and lets the request through anonymously
// otherwise. Used on public routes whose behavior widens for staff.
func OptionalJWTAuthMiddleware(cfg *config.Config, loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, appErr := resolveBearerUser(r, cfg, loader)
			if appErr != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), model.UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to the given roles. Must run after
// JWTAuthMiddleware.
func RequireRole(roles ...model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			user, err := GetUserFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			if !user.HasRole(roles...) {
				logger.Warn("Role check failed",
					"user_id", user.UserID.String(),
					"role", string(user.Role),
				)
				appErr := model.NewAppError("FORBIDDEN", "You do not have access to this resource.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the authenticated user set by JWTAuthMiddleware.
func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(model.UserKey).(*model.User)
	if !ok || user == nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No authenticated user in request context.", "", model.ErrInternalServer)
	}
	return user, nil
}
