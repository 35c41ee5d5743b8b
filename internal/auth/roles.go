package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-service/internal/domain"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

// RequireRole gates a route on the caller's role. Admins satisfy every
// role check; a user-role requirement does not lock admins out.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := CheckRole(principal, required); err != nil {
			return err
		}
		return c.Next()
	}
}

// CheckRole applies the role policy outside of middleware, for handlers
// that decide authorization per-resource.
func CheckRole(principal *domain.User, required domain.Role) error {
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Role != required && !principal.IsAdmin() {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}
