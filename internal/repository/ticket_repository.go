package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/persistence"
)

// TicketRepository exposes the read-only ticket queries used for workload figures.
type TicketRepository interface {
	ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error)
	WorkloadByTechnician(ctx context.Context, technicianIDs []string) (map[string]domain.Workload, error)
	CountByCreator(ctx context.Context, userID string) (int, error)
	CountByTechnician(ctx context.Context, userID string) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, creator_id, technician_id, status, created_at, assigned_at, resolved_at
        FROM tickets WHERE technician_id=$1`

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query, technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) WorkloadByTechnician(ctx context.Context, technicianIDs []string) (map[string]domain.Workload, error) {
	result := make(map[string]domain.Workload, len(technicianIDs))
	if len(technicianIDs) == 0 {
		return result, nil
	}

	const query = `
        SELECT technician_id::text,
               COUNT(*) FILTER (WHERE status IN ($2, $3)),
               COUNT(*) FILTER (WHERE status = $3)
        FROM tickets
        WHERE technician_id = ANY($1::uuid[])
        GROUP BY technician_id`

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query,
		technicianIDs,
		domain.TicketStatusAssignedToTechnician,
		domain.TicketStatusInProgress,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       string
			workload domain.Workload
		)
		if err := rows.Scan(&id, &workload.Assigned, &workload.InProgress); err != nil {
			return nil, err
		}
		result[id] = workload
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByCreator(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE creator_id=$1`
	return r.count(ctx, query, userID)
}

func (r *ticketRepository) CountByTechnician(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE technician_id=$1`
	return r.count(ctx, query, userID)
}

func (r *ticketRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := persistence.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CreatorID,
			&ticket.TechnicianID,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.AssignedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
