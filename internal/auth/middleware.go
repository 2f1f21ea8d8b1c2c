package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	ClientID    string
}

// AuthMiddleware validates bearer tokens.
type AuthMiddleware struct {
	tokens  *TokenManager
	enabled bool
}

// NewAuthMiddleware constructs middleware. A disabled middleware lets every request through.
func NewAuthMiddleware(tokens *TokenManager, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, enabled: enabled}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return errorutil.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return errorutil.NewUnauthorized("invalid token")
	}
	if claims.Subject != domain.SubjectTypeClient {
		return errorutil.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, &Principal{SubjectType: claims.Subject, ClientID: claims.RegisteredClaims.Subject})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
