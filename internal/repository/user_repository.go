package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/persistence"
)

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, roleID string, status domain.UserStatus) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetStatus(ctx context.Context, id string, status domain.UserStatus) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        u.id, u.full_name, u.email, u.agency, u.phone, u.status, u.specialization,
        u.role_id, u.password_hash, u.last_login_at, u.created_at, u.updated_at,
        r.id, r.name, r.description
        FROM users u JOIN roles r ON r.id = u.role_id`

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT` + userColumns

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) ListByRole(ctx context.Context, roleID string, status domain.UserStatus) ([]domain.User, error) {
	const query = `SELECT` + userColumns + `
        WHERE u.role_id=$1 AND u.status=$2`

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query, roleID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT` + userColumns + `
        WHERE u.id=$1`
	return scanUser(persistence.Conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT` + userColumns + `
        WHERE u.email=$1`
	return scanUser(persistence.Conn(ctx, r.pool).QueryRow(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, email=$2, agency=$3, phone=$4, status=$5,
            specialization=$6, role_id=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := persistence.Conn(ctx, r.pool).Exec(ctx, query,
		user.FullName,
		user.Email,
		user.Agency,
		user.Phone,
		user.Status,
		user.Specialization,
		user.RoleID,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	return r.execOne(ctx, query, hash, id)
}

func (r *userRepository) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	const query = `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`
	return r.execOne(ctx, query, status, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id=$1`
	return r.execOne(ctx, query, id)
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...any) error {
	cmd, err := persistence.Conn(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		role domain.Role
	)
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Agency,
		&user.Phone,
		&user.Status,
		&user.Specialization,
		&user.RoleID,
		&user.PasswordHash,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&role.ID,
		&role.Name,
		&role.Description,
	); err != nil {
		return nil, err
	}
	user.Role = &role
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}
