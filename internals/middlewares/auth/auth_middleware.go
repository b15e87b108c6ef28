// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // also accept the access_token cookie
}

// AuthJWT rejects requests without a valid access token (401). On success the
// caller identity lands in locals: user_id, user_role, user_name.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, err := extractToken(c, opts.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		claims, err := parseAccessClaims(tok, opts.Secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OptionalAuthJWT resolves the identity when a token is present but never
// rejects; endpoints that degrade for anonymous callers use this.
func OptionalAuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, err := extractToken(c, opts.AllowCookieFallback)
		if err == nil {
			if claims, perr := parseAccessClaims(tok, opts.Secret); perr == nil {
				storeClaimsToLocals(c, claims)
			}
		}
		return c.Next()
	}
}

/* ======== Locals accessors ======== */

func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	s, ok := c.Locals("user_id").(string)
	if !ok || s == "" {
		return uuid.Nil, fmt.Errorf("no authenticated user")
	}
	return uuid.Parse(s)
}

func UserRole(c *fiber.Ctx) string {
	s, _ := c.Locals("user_role").(string)
	return s
}

func IsAuthenticated(c *fiber.Ctx) bool {
	s, ok := c.Locals("user_id").(string)
	return ok && s != ""
}

/* ======== Token plumbing ======== */

func extractToken(c *fiber.Ctx, cookieFallback bool) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" && cookieFallback {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func parseAccessClaims(tokenString, secret string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("missing JWT secret")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("token parse error")
	}
	if err := validateExpiry(claims, 30*time.Second); err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	if _, err := uuid.Parse(strings.TrimSpace(sub)); err != nil {
		return nil, fmt.Errorf("invalid or missing user ID")
	}
	return claims, nil
}

func validateExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}
	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	default:
		return fmt.Errorf("invalid exp type")
	}
	if time.Now().UTC().After(time.Unix(expUnix, 0).UTC().Add(skew)) {
		return fmt.Errorf("token expired")
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Locals("user_id", strings.TrimSpace(sub))
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals("user_role", role)
	}
	if name, ok := claims["name"].(string); ok {
		c.Locals("user_name", name)
	}
}
