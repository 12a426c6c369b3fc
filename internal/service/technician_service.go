package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/repository"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

// TechnicianService serves the technician directory and performance figures.
type TechnicianService struct {
	users   repository.UserRepository
	roles   repository.RoleRepository
	tickets repository.TicketRepository
	clock   Clock
}

// TechnicianDependencies bundles repositories for the technician service.
type TechnicianDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	TicketRepo repository.TicketRepository
	Clock      Clock
}

// NewTechnicianService constructs the service.
func NewTechnicianService(deps TechnicianDependencies) *TechnicianService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &TechnicianService{
		users:   deps.UserRepo,
		roles:   deps.RoleRepo,
		tickets: deps.TicketRepo,
		clock:   clock,
	}
}

// ListTechnicians returns active technicians with their open ticket counters.
// A missing technician role yields an empty directory.
func (s *TechnicianService) ListTechnicians(ctx context.Context) ([]domain.TechnicianWorkload, error) {
	role, err := s.roles.GetByName(ctx, domain.RoleTechnician)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TechnicianWorkload{}, nil
		}
		return nil, apperrors.MapError(err)
	}

	technicians, err := s.users.ListByRole(ctx, role.ID, domain.UserStatusActive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]string, 0, len(technicians))
	for i := range technicians {
		ids = append(ids, technicians[i].ID)
	}
	workloads, err := s.tickets.WorkloadByTechnician(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]domain.TechnicianWorkload, 0, len(technicians))
	for i := range technicians {
		result = append(result, domain.TechnicianWorkload{
			Technician: technicians[i],
			Workload:   workloads[technicians[i].ID],
		})
	}
	return result, nil
}

// GetTechnicianStats computes the performance snapshot of one technician.
func (s *TechnicianService) GetTechnicianStats(ctx context.Context, technicianID string) (*domain.TechnicianStats, error) {
	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if !technician.HasRole(domain.RoleTechnician) {
		return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
	}

	tickets, err := s.tickets.ListByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := ComputeTechnicianStats(*technician, tickets, s.clock.Now())
	return &stats, nil
}
