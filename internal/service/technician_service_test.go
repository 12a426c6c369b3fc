package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/domain"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

func newTechnicianService(store *memStore) *TechnicianService {
	return NewTechnicianService(TechnicianDependencies{
		UserRepo:   fakeUserRepo{store},
		RoleRepo:   fakeRoleRepo{store},
		TicketRepo: fakeTicketRepo{store},
		Clock:      fixedClock{now: statsNow},
	})
}

func TestListTechniciansWithoutRoleIsEmpty(t *testing.T) {
	store := newMemStore()
	store.addRole("r-admin", domain.RoleAdmin)
	store.addUser(domain.User{ID: "admin", RoleID: "r-admin"})

	list, err := newTechnicianService(store).ListTechnicians(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListTechniciansCountsWorkload(t *testing.T) {
	store := newMemStore()
	store.addRole("r-tech", domain.RoleTechnician)
	store.addRole("r-dsi", domain.RoleDSI)
	store.addUser(domain.User{ID: "t1", FullName: "Awa", RoleID: "r-tech"})
	store.addUser(domain.User{ID: "t2", FullName: "Koffi", RoleID: "r-tech"})
	store.addUser(domain.User{ID: "t3", RoleID: "r-tech", Status: domain.UserStatusInactive})
	store.addUser(domain.User{ID: "boss", RoleID: "r-dsi"})

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusAssignedToTechnician,
		domain.TicketStatusInProgress,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	} {
		store.addTicket(domain.Ticket{CreatorID: "boss", TechnicianID: ptr("t1"), Status: status})
	}

	list, err := newTechnicianService(store).ListTechnicians(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "t1", list[0].Technician.ID)
	assert.Equal(t, domain.RoleTechnician, list[0].Technician.Role.Name)
	assert.Equal(t, domain.Workload{Assigned: 3, InProgress: 2}, list[0].Workload)
	assert.Equal(t, "t2", list[1].Technician.ID)
	assert.Equal(t, domain.Workload{}, list[1].Workload)

	for _, item := range list {
		assert.GreaterOrEqual(t, item.Workload.Assigned, item.Workload.InProgress)
	}
}

func TestGetTechnicianStats(t *testing.T) {
	store := newMemStore()
	store.addRole("r-tech", domain.RoleTechnician)
	store.addUser(domain.User{ID: "t1", FullName: "Awa", RoleID: "r-tech"})
	store.addTicket(domain.Ticket{TechnicianID: ptr("t1"), Status: domain.TicketStatusClosed, AssignedAt: at(0, 8), ResolvedAt: at(2, 8)})
	store.addTicket(domain.Ticket{TechnicianID: ptr("t1"), Status: domain.TicketStatusInProgress})
	store.addTicket(domain.Ticket{TechnicianID: ptr("t1"), Status: domain.TicketStatusInProgress})
	store.addTicket(domain.Ticket{TechnicianID: ptr("t1"), Status: domain.TicketStatusAssignedToTechnician})
	store.addTicket(domain.Ticket{TechnicianID: ptr("someone-else"), Status: domain.TicketStatusClosed})

	stats, err := newTechnicianService(store).GetTechnicianStats(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "Awa", stats.Technician.FullName)
	assert.Equal(t, 4, stats.TotalAssigned)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 2.0, stats.AvgResolutionTimeDays)
	assert.Equal(t, 25.0, stats.SuccessRate)
	assert.Equal(t, 1, stats.ResolvedThisMonth)
	assert.Equal(t, "2/5", stats.WorkloadRatio)
}

func TestGetTechnicianStatsNotFound(t *testing.T) {
	store := newMemStore()
	store.addRole("r-tech", domain.RoleTechnician)
	store.addRole("r-dsi", domain.RoleDSI)
	store.addUser(domain.User{ID: "boss", RoleID: "r-dsi"})
	svc := newTechnicianService(store)

	for _, id := range []string{"missing", "boss"} {
		_, err := svc.GetTechnicianStats(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code, id)
	}
}
