package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserUpdated       EventType = "user.updated"
	EventUserDeactivated   EventType = "user.deactivated"
	EventUserDeleted       EventType = "user.deleted"
	EventUserPasswordReset EventType = "user.password_reset"
)

// Event represents a user administration event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserUpdatedPayload lists the fields an update touched.
type UserUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// UserRemovedPayload explains why a delete request deactivated the account.
type UserRemovedPayload struct {
	CreatedTickets  int `json:"created_tickets"`
	AssignedTickets int `json:"assigned_tickets"`
}

// PasswordResetPayload records how the new password was obtained.
type PasswordResetPayload struct {
	Generated bool `json:"generated"`
}
