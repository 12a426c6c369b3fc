package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/repository"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserService administers user accounts.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tickets    repository.TicketRepository
	tx         Transactor
	dispatcher events.Dispatcher
	clock      Clock
	logger     *zap.Logger
	bcryptCost int
}

// UserDependencies bundles collaborators of the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	TicketRepo repository.TicketRepository
	Tx         Transactor
	Dispatcher events.Dispatcher
	Clock      Clock
	Logger     *zap.Logger
}

// UserUpdate is a partial patch; nil fields are left untouched.
type UserUpdate struct {
	FullName       *string
	Email          *string
	Agency         *string
	Phone          *string
	Status         *domain.UserStatus
	Specialization *string
	RoleID         *string
}

// DeleteResult tells whether a delete removed the row or only deactivated it.
type DeleteResult struct {
	UserID      string
	Deactivated bool
}

// PasswordResetResult carries the plaintext password back to the administrator once.
type PasswordResetResult struct {
	UserID      string
	NewPassword string
	Generated   bool
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		tickets:    deps.TicketRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// ListUsers returns every account with its role.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser fetches a single account.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, id)
	}
	return user, nil
}

// UpdateUser applies a partial patch and returns the refreshed account.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id string, patch UserUpdate) (*domain.User, error) {
	var (
		updated *domain.User
		fields  []string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return userLookupError(err, id)
		}

		if patch.Email != nil && *patch.Email != user.Email {
			existing, err := s.users.GetByEmail(ctx, *patch.Email)
			switch {
			case err == nil && existing.ID != user.ID:
				return apperrors.NewConflict(apperrors.EmailInUseMessage, map[string]any{"email": *patch.Email})
			case err != nil && !errors.Is(err, pgx.ErrNoRows):
				return apperrors.MapError(err)
			}
		}
		if patch.RoleID != nil {
			if _, err := s.roles.GetByID(ctx, *patch.RoleID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewNotFound("Role", map[string]any{"role_id": *patch.RoleID})
				}
				return apperrors.MapError(err)
			}
		}

		fields = applyUserUpdate(user, patch)
		if err := s.users.Update(ctx, user); err != nil {
			return apperrors.MapError(err)
		}

		updated, err = s.users.GetByID(ctx, id)
		if err != nil {
			return apperrors.MapError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventUserUpdated, id, actor, events.UserUpdatedPayload{Fields: fields})
	return updated, nil
}

// DeleteUser hard-deletes an account without ticket history and deactivates
// it otherwise. Administrators can never remove their own account.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id string) (*DeleteResult, error) {
	result := &DeleteResult{UserID: id}
	var payload events.UserRemovedPayload

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return userLookupError(err, id)
		}
		if actor != nil && user.ID == actor.ID {
			return apperrors.NewInvalidOperation("Cannot delete your own account", map[string]any{"user_id": id})
		}

		created, err := s.tickets.CountByCreator(ctx, id)
		if err != nil {
			return apperrors.MapError(err)
		}
		assigned, err := s.tickets.CountByTechnician(ctx, id)
		if err != nil {
			return apperrors.MapError(err)
		}
		payload = events.UserRemovedPayload{CreatedTickets: created, AssignedTickets: assigned}

		if created > 0 || assigned > 0 {
			result.Deactivated = true
			return apperrors.MapError(s.users.SetStatus(ctx, id, domain.UserStatusInactive))
		}
		return apperrors.MapError(s.users.Delete(ctx, id))
	})
	if err != nil {
		return nil, err
	}

	if result.Deactivated {
		s.publishEvent(ctx, events.EventUserDeactivated, id, actor, payload)
	} else {
		s.publishEvent(ctx, events.EventUserDeleted, id, actor, nil)
	}
	return result, nil
}

// ResetPassword stores the hash of newPassword, or of a generated password
// when newPassword is empty, and returns the plaintext.
func (s *UserService) ResetPassword(ctx context.Context, actor *domain.User, id, newPassword string) (*PasswordResetResult, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, userLookupError(err, id)
	}

	result := &PasswordResetResult{UserID: id, NewPassword: newPassword}
	if result.NewPassword == "" {
		generated, err := auth.GeneratePassword(auth.GeneratedPasswordLength)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		result.NewPassword = generated
		result.Generated = true
	}

	hash, err := auth.HashPassword(result.NewPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		return nil, userLookupError(err, id)
	}

	s.publishEvent(ctx, events.EventUserPasswordReset, id, actor, events.PasswordResetPayload{Generated: result.Generated})
	return result, nil
}

func applyUserUpdate(user *domain.User, patch UserUpdate) []string {
	var fields []string
	if patch.FullName != nil {
		user.FullName = *patch.FullName
		fields = append(fields, "full_name")
	}
	if patch.Email != nil {
		user.Email = *patch.Email
		fields = append(fields, "email")
	}
	if patch.Agency != nil {
		user.Agency = *patch.Agency
		fields = append(fields, "agency")
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
		fields = append(fields, "phone")
	}
	if patch.Status != nil {
		user.Status = *patch.Status
		fields = append(fields, "status")
	}
	if patch.Specialization != nil {
		spec := *patch.Specialization
		user.Specialization = &spec
		fields = append(fields, "specialization")
	}
	if patch.RoleID != nil {
		user.RoleID = *patch.RoleID
		fields = append(fields, "role_id")
	}
	return fields
}

func userLookupError(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("User", map[string]any{"user_id": id})
	}
	return apperrors.MapError(err)
}

func (s *UserService) publishEvent(ctx context.Context, eventType events.EventType, userID string, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: s.clock.Now().Truncate(time.Millisecond),
		Payload:   payload,
	}
	if actor != nil {
		event.ActorID = actor.ID
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
