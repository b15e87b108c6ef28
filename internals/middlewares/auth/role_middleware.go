// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"kursusku_backend/internals/constants"
)

// RequireRoles gates a group to the given roles: 401 without identity,
// 403 when the role does not match.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if !IsAuthenticated(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		if _, ok := allowed[UserRole(c)]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden - Insufficient permissions")
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return RequireRoles(constants.RoleAdmin)
}

func RequireInstructor() fiber.Handler {
	return RequireRoles(constants.RoleInstructor, constants.RoleAdmin)
}

// OwnerOrAdmin is the shared ownership check: the caller must be the
// resource's owner or an admin.
func OwnerOrAdmin(c *fiber.Ctx, ownerID string) error {
	uid, err := UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	if UserRole(c) == constants.RoleAdmin {
		return nil
	}
	if uid.String() != ownerID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden - You do not own this resource")
	}
	return nil
}
