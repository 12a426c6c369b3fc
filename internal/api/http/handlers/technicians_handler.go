package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/domain"
)

// TechnicianDirectory is the service surface behind the technician endpoints.
type TechnicianDirectory interface {
	ListTechnicians(ctx context.Context) ([]domain.TechnicianWorkload, error)
	GetTechnicianStats(ctx context.Context, technicianID string) (*domain.TechnicianStats, error)
}

// TechniciansHandler serves the technician directory used for ticket assignment.
type TechniciansHandler struct {
	technicians TechnicianDirectory
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicians TechnicianDirectory) *TechniciansHandler {
	return &TechniciansHandler{technicians: technicians}
}

// ListTechnicians GET /users/technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	list, err := h.technicians.ListTechnicians(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(list))
	for i := range list {
		items = append(items, technicianResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// TechnicianStats GET /users/technicians/:id/stats.
func (h *TechniciansHandler) TechnicianStats(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.technicians.GetTechnicianStats(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": technicianStatsResponse(stats)})
}

func technicianResponse(item *domain.TechnicianWorkload) dto.TechnicianResponse {
	tech := &item.Technician
	return dto.TechnicianResponse{
		ID:                     tech.ID,
		FullName:               tech.FullName,
		Email:                  tech.Email,
		Agency:                 tech.Agency,
		Phone:                  tech.Phone,
		Status:                 tech.Status,
		Specialization:         tech.Specialization,
		Role:                   roleResponse(tech.Role),
		AssignedTicketsCount:   item.Workload.Assigned,
		InProgressTicketsCount: item.Workload.InProgress,
	}
}

func technicianStatsResponse(stats *domain.TechnicianStats) dto.TechnicianStatsResponse {
	tech := &stats.Technician
	return dto.TechnicianStatsResponse{
		ID:                     tech.ID,
		FullName:               tech.FullName,
		Email:                  tech.Email,
		Phone:                  tech.Phone,
		Agency:                 tech.Agency,
		Specialization:         tech.Specialization,
		Status:                 tech.Status,
		LastLoginAt:            formatTimestamp(tech.LastLoginAt),
		AssignedTicketsCount:   stats.TotalAssigned,
		InProgressTicketsCount: stats.InProgress,
		ResolvedTicketsCount:   stats.Resolved,
		ClosedTicketsCount:     stats.Closed,
		ResolvedThisMonth:      stats.ResolvedThisMonth,
		ResolvedToday:          stats.ResolvedToday,
		AvgResolutionTimeDays:  stats.AvgResolutionTimeDays,
		AvgResponseTimeMinutes: stats.AvgResponseTimeMinutes,
		SuccessRate:            stats.SuccessRate,
		AvailabilityStatus:     stats.AvailabilityStatus,
		WorkloadRatio:          stats.WorkloadRatio,
		WorkHours:              stats.WorkHours,
	}
}
