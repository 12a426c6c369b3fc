package service

import (
	"fmt"
	"math"
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

const (
	busyThreshold = 3
	maxWorkload   = 5
	workHours     = "08:00–17:00"

	availabilityAvailable = "available"
	availabilityBusy      = "busy"
)

// ComputeTechnicianStats reduces every ticket ever assigned to technician
// into a performance snapshot. now anchors the month and day windows.
func ComputeTechnicianStats(technician domain.User, tickets []domain.Ticket, now time.Time) domain.TechnicianStats {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats := domain.TechnicianStats{
		Technician:    technician,
		TotalAssigned: len(tickets),
		WorkHours:     workHours,
	}

	var (
		resolutionDays  float64
		resolutionCount int
		responseMinutes float64
		responseCount   int
	)
	for i := range tickets {
		t := &tickets[i]
		switch t.Status {
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		}
		if !t.IsFinished() {
			continue
		}

		if t.AssignedAt != nil && t.ResolvedAt != nil {
			resolutionDays += t.ResolvedAt.Sub(*t.AssignedAt).Hours() / 24
			resolutionCount++
		}
		if t.AssignedAt != nil && !t.CreatedAt.IsZero() {
			responseMinutes += t.AssignedAt.Sub(t.CreatedAt).Minutes()
			responseCount++
		}
		if t.ResolvedAt != nil {
			if !t.ResolvedAt.Before(monthStart) {
				stats.ResolvedThisMonth++
			}
			if !t.ResolvedAt.Before(dayStart) {
				stats.ResolvedToday++
			}
		}
	}

	if resolutionCount > 0 {
		stats.AvgResolutionTimeDays = roundTo(resolutionDays/float64(resolutionCount), 1)
	}
	if responseCount > 0 {
		stats.AvgResponseTimeMinutes = int64(math.Round(responseMinutes / float64(responseCount)))
	}
	if stats.TotalAssigned > 0 {
		stats.SuccessRate = roundTo(float64(stats.Closed)/float64(stats.TotalAssigned)*100, 1)
	}

	stats.AvailabilityStatus = availabilityAvailable
	if stats.InProgress >= busyThreshold {
		stats.AvailabilityStatus = availabilityBusy
	}
	stats.WorkloadRatio = fmt.Sprintf("%d/%d", min(stats.InProgress, maxWorkload), maxWorkload)
	return stats
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
