package middleware

import (
	"churn-shield/internal/config"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimSessionID is the JWT claim carrying the dashboard session id.
const ClaimSessionID = "sid"

type contextKey int

const sessionContextKey contextKey = iota

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)
	return s, ok && s != nil
}

// IssueToken signs a bearer token bound to a session id.
func IssueToken(cfg config.AuthConfig, username, sessionID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub":          username,
		ClaimSessionID: sessionID,
		"iat":          now.Unix(),
		"exp":          expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// RequestSessionID returns the session id from a valid bearer token, or
// else from the session cookie. An invalid bearer token yields an error
// rather than falling back to the cookie.
func RequestSessionID(r *http.Request, cfg config.AuthConfig) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return sessionIDFromBearer(authHeader, cfg.JWTSecret)
	}
	if c, err := r.Cookie(cfg.CookieName); err == nil {
		return c.Value, nil
	}
	return "", nil
}

func sessionIDFromBearer(authHeader, secret string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid Authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected token claims")
	}
	sid, _ := claims[ClaimSessionID].(string)
	if sid == "" {
		return "", errors.New("token carries no session id")
	}
	return sid, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`))
}

// AuthMiddleware admits requests whose session is logged in and stores the
// session in the request context. With auth disabled every request passes
// and a logged-in session is attached when one is present.
func AuthMiddleware(cfg config.AuthConfig, sessions *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sid, err := RequestSessionID(r, cfg)
			if err != nil || sid == "" {
				if !cfg.Enabled {
					next.ServeHTTP(w, r)
					return
				}
				logger.WarnContext(ctx, "Rejected request without valid credentials", slog.Any("error", err))
				unauthorized(w)
				return
			}

			s, err := sessions.Get(ctx, sid)
			if errors.Is(err, apperrors.ErrStoreUnavailable) {
				logger.ErrorContext(ctx, "Session store unavailable", slog.Any("error", err))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "5")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":{"code":"STORE_UNAVAILABLE","message":"Session store unavailable"}}`))
				return
			}
			if err != nil || !s.Authenticated() {
				if !cfg.Enabled {
					next.ServeHTTP(w, r)
					return
				}
				logger.WarnContext(ctx, "Rejected request for session that is not logged in", slog.Any("error", err))
				unauthorized(w)
				return
			}

			logger.DebugContext(ctx, "Authenticated request", slog.String("username", s.Username))
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, s)))
		})
	}
}
