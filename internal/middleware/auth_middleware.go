package middleware

import (
	"strings"

	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// ActorKey is the Locals key under which RequireAuth stores the
// authenticated policy actor.
const ActorKey = "actor"

// RequireAuth validates the JWT and the strict single session, then sets
// the policy actor in context for downstream handlers.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.Enabled {
			return c.Status(401).JSON(fiber.Map{"error": "Account disabled"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		// The DB row wins over the claims: role or branch changes apply
		// without waiting for token expiry.
		c.Locals(ActorKey, policy.Actor{
			ID:                user.ID,
			Role:              user.Role,
			BranchID:          user.BranchID,
			IsWarehouseKeeper: user.IsWarehouseKeeper,
		})

		return c.Next()
	}
}

// Actor pulls the authenticated actor out of the request context.
func Actor(c *fiber.Ctx) (policy.Actor, bool) {
	actor, ok := c.Locals(ActorKey).(policy.Actor)
	return actor, ok
}

// RequireRole allows only the listed roles past.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := Actor(c)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No actor in context"})
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: insufficient role"})
	}
}

// RequireAdmin is shorthand for the admin-only routes.
func RequireAdmin() fiber.Handler {
	return RequireRole(model.RoleAdmin)
}
