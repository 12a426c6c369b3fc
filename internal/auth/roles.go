package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/domain"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

var (
	// TechnicianViewers may browse the technician directory and statistics.
	TechnicianViewers = []domain.RoleName{
		domain.RoleSecretaryDSI,
		domain.RoleDeputyDSI,
		domain.RoleDSI,
		domain.RoleAdmin,
	}

	// UserAdministrators may read and modify any account.
	UserAdministrators = []domain.RoleName{
		domain.RoleDSI,
		domain.RoleAdmin,
	}
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
func RequireRole(allowed ...domain.RoleName) fiber.Handler {
	allowedSet := make(map[domain.RoleName]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if user.Role == nil {
			return apperrors.NewForbidden("insufficient role")
		}
		if _, exists := allowedSet[user.Role.Name]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
