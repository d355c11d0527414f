// Package entity contains the core business objects of the project.
package entity

import "time"

// AuthEventType enumerates the account-lifecycle transitions that emit events.
type AuthEventType string

const (
	// AuthEventUserRegistered is emitted when a new account is created,
	// whether through registration or a first federated login.
	AuthEventUserRegistered AuthEventType = "USER_REGISTERED"
)

// AuthEvent is an immutable record of an account-lifecycle transition.
// It is published fire-and-forget; no consumer state feeds back into the
// auth flow.
type AuthEvent struct {
	EventID    string        `json:"event_id"`
	EventType  AuthEventType `json:"event_type"`
	UserID     int64         `json:"user_id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	Role       string        `json:"role"`
	OccurredAt time.Time     `json:"occurred_at"`
}
