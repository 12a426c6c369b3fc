package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/persistence"
)

// RoleRepository reads the roles table.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository constructs repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	const query = `SELECT id, name, description FROM roles WHERE id=$1`
	var role domain.Role
	if err := persistence.Conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	const query = `SELECT id, name, description FROM roles WHERE name=$1`
	var role domain.Role
	if err := persistence.Conn(ctx, r.pool).QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description); err != nil {
		return nil, err
	}
	return &role, nil
}
