package dto

import (
	"churn-shield/internal/domain/session"
	"fmt"
	"strings"
	"time"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *CredentialsRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if r.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

type LoginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type SessionResponse struct {
	ID             string `json:"id"`
	State          string `json:"state"`
	Username       string `json:"username,omitempty"`
	JustRegistered bool   `json:"justRegistered"`
}

func NewSessionResponse(s *session.Session, notice bool) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		State:          string(s.State),
		Username:       s.Username,
		JustRegistered: notice,
	}
}
