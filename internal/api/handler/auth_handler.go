package handler

import (
	"churn-shield/internal/api/handler/dto"
	"churn-shield/internal/api/middleware"
	"churn-shield/internal/config"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/domain/user"
	"churn-shield/internal/infrastructure/monitoring"
	"churn-shield/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const registeredMessage = "You have successfully registered!"

type AuthHandler struct {
	users    user.Service
	sessions *session.Manager
	cfg      config.AuthConfig
	logger   *slog.Logger
}

func NewAuthHandler(users user.Service, sessions *session.Manager, cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	if users == nil {
		panic("user service cannot be nil")
	}
	if sessions == nil {
		panic("session manager cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   l.With("component", "AuthHandler"),
	}
}

func authResult(err error) string {
	switch {
	case err == nil:
		return monitoring.ResultSuccess
	case errors.Is(err, apperrors.ErrStoreUnavailable), errors.Is(err, apperrors.ErrInternalServer):
		return monitoring.ResultError
	}
	return monitoring.ResultFailure
}

// Register handles POST /auth/register
// @Summary Register a dashboard user
// @Description Stores a new username with a hashed password. A logged-out session enters registration implicitly; on success it returns to logged out with a one-time notice.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "New credentials"
// @Success 201 {object} dto.RegisterResponse "User registered"
// @Failure 400 {object} dto.ErrorResponse "Empty username or password"
// @Failure 409 {object} dto.ErrorResponse "Username already exists, or session is logged in"
// @Failure 503 {object} dto.ErrorResponse "Credential or session store unavailable"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	s, err := currentSession(r, h.cfg, h.sessions, h.logger)
	if err != nil {
		respondError(w, err)
		return
	}
	if s.State == session.StateLoggedOut {
		if err := s.Apply(session.EventBeginRegistration, ""); err != nil {
			respondError(w, err)
			return
		}
	} else if s.State != session.StateRegistering {
		respondError(w, fmt.Errorf("%w: log out before registering", session.ErrInvalidTransition))
		return
	}

	if err := req.Validate(); err != nil {
		monitoring.RecordAuthAttempt("register", monitoring.ResultFailure)
		h.keepSession(w, r, s)
		respondError(w, apperrors.NewValidationError("", "Please fill out all fields."))
		return
	}

	err = h.users.AddUser(ctx, req.Username, req.Password)
	monitoring.RecordAuthAttempt("register", authResult(err))
	if err != nil {
		h.keepSession(w, r, s)
		if errors.Is(err, user.ErrDuplicateUser) {
			respondError(w, fmt.Errorf("%w: Username already exists. Please choose a different one.", apperrors.ErrAlreadyExists))
			return
		}
		respondError(w, err)
		return
	}

	if err := h.sessions.Transition(ctx, s, session.EventCompleteRegistration, ""); err != nil {
		h.logger.ErrorContext(ctx, "User stored but session not updated", slog.Any("error", err))
		respondError(w, err)
		return
	}
	setSessionCookie(w, r, h.cfg, h.sessions, s)
	respondJSON(w, http.StatusCreated, dto.RegisterResponse{Username: req.Username, Message: registeredMessage})
}

// keepSession persists a session left in the registering state after a
// rejected attempt so the client stays on the form.
func (h *AuthHandler) keepSession(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := h.sessions.Save(r.Context(), s); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to persist session", slog.Any("error", err))
		return
	}
	setSessionCookie(w, r, h.cfg, h.sessions, s)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verifies credentials, moves the session to logged in and returns a bearer token bound to it. The session cookie is set as well.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 401 {object} dto.ErrorResponse "Username or password is incorrect"
// @Failure 409 {object} dto.ErrorResponse "Session is not logged out"
// @Failure 503 {object} dto.ErrorResponse "Credential or session store unavailable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	ok, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		monitoring.RecordAuthAttempt("login", monitoring.ResultError)
		respondError(w, err)
		return
	}
	if !ok {
		monitoring.RecordAuthAttempt("login", monitoring.ResultFailure)
		respondError(w, fmt.Errorf("%w: Username or password is incorrect", user.ErrInvalidCredentials))
		return
	}

	s, err := currentSession(r, h.cfg, h.sessions, h.logger)
	if err != nil {
		monitoring.RecordAuthAttempt("login", monitoring.ResultError)
		respondError(w, err)
		return
	}
	if err := h.sessions.Transition(ctx, s, session.EventLogIn, req.Username); err != nil {
		monitoring.RecordAuthAttempt("login", authResult(err))
		respondError(w, err)
		return
	}
	monitoring.RecordAuthAttempt("login", monitoring.ResultSuccess)

	token, expiresAt, err := middleware.IssueToken(h.cfg, s.Username, s.ID, time.Now())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %w", apperrors.ErrInternalServer, err))
		return
	}

	h.logger.InfoContext(ctx, "User logged in", slog.String("username", s.Username))
	setSessionCookie(w, r, h.cfg, h.sessions, s)
	respondJSON(w, http.StatusOK, dto.LoginResponse{Username: s.Username, Token: token, ExpiresAt: expiresAt})
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Returns the session to logged out and clears the session cookie.
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.SessionResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 503 {object} dto.ErrorResponse "Session store unavailable"
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := middleware.SessionFromContext(ctx)
	if !ok {
		respondError(w, fmt.Errorf("%w: not logged in", apperrors.ErrUnauthorized))
		return
	}
	username := s.Username
	if err := h.sessions.Transition(ctx, s, session.EventLogOut, ""); err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "User logged out", slog.String("username", username))
	clearSessionCookie(w, h.cfg)
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(s, false))
}
