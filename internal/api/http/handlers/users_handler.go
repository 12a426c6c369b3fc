package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

// UserAdministration is the service surface behind the /users endpoints.
type UserAdministration interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id string, patch service.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id string) (*service.DeleteResult, error)
	ResetPassword(ctx context.Context, actor *domain.User, id, newPassword string) (*service.PasswordResetResult, error)
}

// UsersHandler exposes account administration endpoints.
type UsersHandler struct {
	users    UserAdministration
	validate *validator.Validate
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserAdministration) *UsersHandler {
	return &UsersHandler{users: users, validate: newValidator()}
}

// ListUsers GET /users/.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateUser PUT /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateRequest(h.validate, &req); err != nil {
		return err
	}

	patch := service.UserUpdate{
		FullName:       req.FullName,
		Email:          req.Email,
		Agency:         req.Agency,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		RoleID:         req.RoleID,
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		patch.Status = &status
	}

	user, err := h.users.UpdateUser(c.UserContext(), actor, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.users.DeleteUser(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	resp := dto.DeleteUserResponse{
		Message:     "User deleted successfully",
		UserID:      result.UserID,
		Deactivated: result.Deactivated,
	}
	if result.Deactivated {
		resp.Message = "User deactivated (has associated tickets)"
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ResetPassword POST /users/:id/reset-password.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateRequest(h.validate, &req); err != nil {
		return err
	}

	result, err := h.users.ResetPassword(c.UserContext(), actor, id, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ResetPasswordResponse{
		Message:     "Password reset successfully",
		UserID:      result.UserID,
		NewPassword: result.NewPassword,
		Generated:   result.Generated,
	}})
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return user, nil
}

func roleResponse(role *domain.Role) *dto.RoleResponse {
	if role == nil {
		return nil
	}
	return &dto.RoleResponse{ID: role.ID, Name: role.Name, Description: role.Description}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Agency:         user.Agency,
		Phone:          user.Phone,
		Status:         user.Status,
		IsActive:       user.IsActive(),
		Specialization: user.Specialization,
		Role:           roleResponse(user.Role),
		LastLoginAt:    user.LastLoginAt,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
