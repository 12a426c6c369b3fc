package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The lifecycle itself
// is owned by the ticket service; this module only reads it.
type TicketStatus string

const (
	TicketStatusOpen                 TicketStatus = "OPEN"
	TicketStatusAssignedToTechnician TicketStatus = "ASSIGNED_TO_TECHNICIAN"
	TicketStatusInProgress           TicketStatus = "IN_PROGRESS"
	TicketStatusResolved             TicketStatus = "RESOLVED"
	TicketStatusClosed               TicketStatus = "CLOSED"
)

// Ticket carries the ticket columns used for workload aggregation.
type Ticket struct {
	ID           string
	CreatorID    string
	TechnicianID *string
	Status       TicketStatus
	CreatedAt    time.Time
	AssignedAt   *time.Time
	ResolvedAt   *time.Time
}

// IsFinished reports whether the technician is done with the ticket.
func (t *Ticket) IsFinished() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}
