// Package authware provides the request-pipeline stages guarding the roster
// service: a bearer-token authentication stage and two role gates. Each stage
// resolves to exactly one outcome per request, either a terminal response or
// a continuation, never both.
package authware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/auth"
)

// IdentityKey is the fiber.Ctx locals key the authentication stage stores the
// resolved account under.
const IdentityKey = "identity"

const authScheme = "Bearer"

// AccountResolver is the slice of the account store the authentication stage
// needs. Mirrored here so the middleware does not depend on the full
// repository surface.
type AccountResolver interface {
	GetByID(ctx context.Context, id string) (*auth.Account, error)
}

// Protect is the authentication stage. It inspects the Authorization header,
// verifies the bearer token, and resolves the token's account id against the
// store. A token whose account has vanished fails the request: a deleted
// admin must not proceed as unauthenticated into a gate that assumes
// presence.
func Protect(tokens auth.TokenValidator, accounts AccountResolver, logger auth.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, no token"})
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			logger.Warn("token verification failed", "error", err)
			return tokenFailed(c)
		}

		account, err := accounts.GetByID(c.UserContext(), claims.AccountID())
		if err != nil {
			logger.Warn("token resolved to no account", "account_id", claims.AccountID(), "error", err)
			return tokenFailed(c)
		}

		c.Locals(IdentityKey, account.Sanitized())
		return c.Next()
	}
}

// RequireAdmin gates on admin rank: admin and superAdmin pass. Compose it
// after Protect; without a preceding authentication stage there is no
// identity and the gate fails closed.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity != nil && identity.Role.IsAtLeast(auth.RoleAdmin) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized as admin"})
	}
}

// RequireSuperAdmin gates on exactly superAdmin.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity != nil && identity.Role == auth.RoleSuperAdmin {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized as superAdmin"})
	}
}

// IdentityFromCtx returns the account attached by Protect, or nil when the
// request never passed the authentication stage.
func IdentityFromCtx(c *fiber.Ctx) *auth.Account {
	identity, _ := c.Locals(IdentityKey).(*auth.Account)
	return identity
}

// tokenFromHeader extracts the raw token from an "Authorization: Bearer
// <token>" header. The scheme match is case-insensitive; anything without
// the scheme marker, or with an empty token, counts as no token at all.
func tokenFromHeader(header string) (string, bool) {
	l := len(authScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], authScheme) {
		return "", false
	}
	if header[l] != ' ' {
		return "", false
	}

	token := strings.TrimSpace(header[l+1:])
	if token == "" {
		return "", false
	}
	return token, true
}

func tokenFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, token failed"})
}
