package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type passthroughTx struct{ calls int }

func (t *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// memStore backs the fake repositories. Reads return copies so callers can
// only change stored rows through the repository methods.
type memStore struct {
	roles   map[string]domain.Role
	users   []domain.User
	tickets []domain.Ticket
}

func newMemStore() *memStore {
	return &memStore{roles: map[string]domain.Role{}}
}

func (m *memStore) addRole(id string, name domain.RoleName) domain.Role {
	role := domain.Role{ID: id, Name: name, Description: string(name) + " role"}
	m.roles[id] = role
	return role
}

func (m *memStore) addUser(u domain.User) {
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	m.users = append(m.users, u)
}

func (m *memStore) addTicket(t domain.Ticket) {
	m.tickets = append(m.tickets, t)
}

func (m *memStore) withRole(u domain.User) domain.User {
	if role, ok := m.roles[u.RoleID]; ok {
		u.Role = &role
	}
	return u
}

func (m *memStore) userIndex(id string) int {
	for i := range m.users {
		if m.users[i].ID == id {
			return i
		}
	}
	return -1
}

type fakeUserRepo struct{ *memStore }

func (r fakeUserRepo) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, r.withRole(u))
	}
	return out, nil
}

func (r fakeUserRepo) ListByRole(_ context.Context, roleID string, status domain.UserStatus) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.RoleID == roleID && u.Status == status {
			out = append(out, r.withRole(u))
		}
	}
	return out, nil
}

func (r fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	i := r.userIndex(id)
	if i < 0 {
		return nil, pgx.ErrNoRows
	}
	u := r.withRole(r.users[i])
	return &u, nil
}

func (r fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u = r.withRole(u)
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	i := r.userIndex(user.ID)
	if i < 0 {
		return pgx.ErrNoRows
	}
	stored := *user
	stored.Role = nil
	r.users[i] = stored
	return nil
}

func (r fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	i := r.userIndex(id)
	if i < 0 {
		return pgx.ErrNoRows
	}
	r.users[i].PasswordHash = hash
	return nil
}

func (r fakeUserRepo) SetStatus(_ context.Context, id string, status domain.UserStatus) error {
	i := r.userIndex(id)
	if i < 0 {
		return pgx.ErrNoRows
	}
	r.users[i].Status = status
	return nil
}

func (r fakeUserRepo) Delete(_ context.Context, id string) error {
	i := r.userIndex(id)
	if i < 0 {
		return pgx.ErrNoRows
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

type fakeRoleRepo struct{ *memStore }

func (r fakeRoleRepo) GetByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &role, nil
}

func (r fakeRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			role := role
			return &role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeTicketRepo struct{ *memStore }

func (r fakeTicketRepo) ListByTechnician(_ context.Context, technicianID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.TechnicianID != nil && *t.TechnicianID == technicianID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r fakeTicketRepo) WorkloadByTechnician(_ context.Context, ids []string) (map[string]domain.Workload, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := map[string]domain.Workload{}
	for _, t := range r.tickets {
		if t.TechnicianID == nil || !wanted[*t.TechnicianID] {
			continue
		}
		w := out[*t.TechnicianID]
		switch t.Status {
		case domain.TicketStatusAssignedToTechnician:
			w.Assigned++
		case domain.TicketStatusInProgress:
			w.Assigned++
			w.InProgress++
		}
		out[*t.TechnicianID] = w
	}
	return out, nil
}

func (r fakeTicketRepo) CountByCreator(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range r.tickets {
		if t.CreatorID == userID {
			n++
		}
	}
	return n, nil
}

func (r fakeTicketRepo) CountByTechnician(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range r.tickets {
		if t.TechnicianID != nil && *t.TechnicianID == userID {
			n++
		}
	}
	return n, nil
}

func ptr[T any](v T) *T { return &v }
