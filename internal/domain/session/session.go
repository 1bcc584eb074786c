package session

import (
	"churn-shield/internal/pkg/apperrors"
	"fmt"
	"time"
)

type State string

const (
	StateLoggedOut   State = "logged_out"
	StateRegistering State = "registering"
	StateLoggedIn    State = "logged_in"
)

type Event string

const (
	EventBeginRegistration    Event = "begin_registration"
	EventCancelRegistration   Event = "cancel_registration"
	EventCompleteRegistration Event = "complete_registration"
	EventLogIn                Event = "log_in"
	EventLogOut               Event = "log_out"
)

var ErrInvalidTransition = fmt.Errorf("%w: invalid session transition", apperrors.ErrConflict)

type transition struct {
	from State
	on   Event
}

var transitions = map[transition]State{
	{StateLoggedOut, EventBeginRegistration}:      StateRegistering,
	{StateRegistering, EventCancelRegistration}:   StateLoggedOut,
	{StateRegistering, EventCompleteRegistration}: StateLoggedOut,
	{StateLoggedOut, EventLogIn}:                  StateLoggedIn,
	{StateLoggedIn, EventLogOut}:                  StateLoggedOut,
}

// Session is the per-browser dashboard state.
type Session struct {
	ID             string    `json:"id"`
	State          State     `json:"state"`
	Username       string    `json:"username,omitempty"`
	JustRegistered bool      `json:"justRegistered,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func New(id string) *Session {
	return &Session{ID: id, State: StateLoggedOut, UpdatedAt: time.Now()}
}

// Apply moves the session along one edge of the state machine. username is
// only read on EventLogIn.
func (s *Session) Apply(ev Event, username string) error {
	next, ok := transitions[transition{s.State, ev}]
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, s.State)
	}

	switch ev {
	case EventCompleteRegistration:
		s.JustRegistered = true
	case EventLogIn:
		s.Username = username
		s.JustRegistered = false
	case EventLogOut:
		s.Username = ""
	}
	s.State = next
	s.UpdatedAt = time.Now()
	return nil
}

// ConsumeNotice returns and clears the one-shot registration notice.
func (s *Session) ConsumeNotice() bool {
	n := s.JustRegistered
	s.JustRegistered = false
	return n
}

func (s *Session) Authenticated() bool {
	return s.State == StateLoggedIn && s.Username != ""
}
