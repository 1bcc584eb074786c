package handler

import (
	"churn-shield/internal/api/handler/dto"
	"churn-shield/internal/api/middleware"
	"churn-shield/internal/config"
	"churn-shield/internal/domain/session"
	"log/slog"
	"net/http"
)

type SessionHandler struct {
	sessions *session.Manager
	cfg      config.AuthConfig
	logger   *slog.Logger
}

func NewSessionHandler(sessions *session.Manager, cfg config.AuthConfig, l *slog.Logger) *SessionHandler {
	if sessions == nil {
		panic("session manager cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &SessionHandler{
		sessions: sessions,
		cfg:      cfg,
		logger:   l.With("component", "SessionHandler"),
	}
}

// currentSession resolves the caller's session from the bearer token or
// cookie. A missing, unknown or unreadable reference yields a fresh
// logged-out session.
func currentSession(r *http.Request, cfg config.AuthConfig, sessions *session.Manager, logger *slog.Logger) (*session.Session, error) {
	sid, err := middleware.RequestSessionID(r, cfg)
	if err != nil {
		logger.DebugContext(r.Context(), "Ignoring invalid session reference", slog.Any("error", err))
		sid = ""
	}
	return sessions.Load(r.Context(), sid)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, cfg config.AuthConfig, sessions *session.Manager, s *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg config.AuthConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSession handles GET /session
// @Summary Read the current session
// @Description Returns the caller's session, creating a logged-out one when none exists. The registration notice is reported once and then cleared.
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse "Current session"
// @Failure 503 {object} dto.ErrorResponse "Session store unavailable"
// @Router /session [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, err := currentSession(r, h.cfg, h.sessions, h.logger)
	if err != nil {
		respondError(w, err)
		return
	}

	notice := s.JustRegistered
	if notice {
		notice, err = h.sessions.ReadNotice(ctx, s)
	} else {
		err = h.sessions.Save(ctx, s)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist session", slog.Any("error", err))
		respondError(w, err)
		return
	}

	setSessionCookie(w, r, h.cfg, h.sessions, s)
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(s, notice))
}

// BeginRegistration handles POST /session/registration
// @Summary Open the registration form
// @Description Moves a logged-out session to the registering state.
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse "Session is registering"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current state"
// @Failure 503 {object} dto.ErrorResponse "Session store unavailable"
// @Router /session/registration [post]
func (h *SessionHandler) BeginRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, session.EventBeginRegistration)
}

// CancelRegistration handles DELETE /session/registration
// @Summary Leave the registration form
// @Description Moves a registering session back to logged out.
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse "Session is logged out"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current state"
// @Failure 503 {object} dto.ErrorResponse "Session store unavailable"
// @Router /session/registration [delete]
func (h *SessionHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, session.EventCancelRegistration)
}

func (h *SessionHandler) transition(w http.ResponseWriter, r *http.Request, ev session.Event) {
	ctx := r.Context()

	s, err := currentSession(r, h.cfg, h.sessions, h.logger)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.sessions.Transition(ctx, s, ev, ""); err != nil {
		respondError(w, err)
		return
	}

	setSessionCookie(w, r, h.cfg, h.sessions, s)
	respondJSON(w, http.StatusOK, dto.NewSessionResponse(s, false))
}
