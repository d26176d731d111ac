package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ursa-team/ursa-go-api/internal/service"
	"github.com/ursa-team/ursa-go-api/internal/utils"
)

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
func RequireRole(roles ...service.Role) fiber.Handler {
	allowed := make(map[service.Role]struct{}, len(roles))
	for _, role := range roles {
		normalized := service.Role(strings.ToLower(strings.TrimSpace(string(role))))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role := ActorFromContext(c).Role
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// ActorFromContext resolves the authenticated caller stored by JWTProtected.
// The role is typed here once so services never re-derive capabilities from
// raw claim strings.
func ActorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{Role: service.Role(normalizeRoleValue(c.Locals("user_role")))}

	if v := c.Locals("user_id"); v != nil {
		switch id := v.(type) {
		case uint:
			actor.ID = id
		case int:
			if id > 0 {
				actor.ID = uint(id)
			}
		case float64:
			if id > 0 {
				actor.ID = uint(id)
			}
		}
	}

	return actor
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
