package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kursusku_backend/internals/constants"
)

// newIdentityApp simulates a resolved JWT by planting locals, then runs
// the handler under test.
func newIdentityApp(uid, role string, h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		if uid != "" {
			c.Locals("user_id", uid)
		}
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	}, h)
	return app
}

func requestStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestOwnerOrAdmin(t *testing.T) {
	owner := uuid.New()
	guard := func(c *fiber.Ctx) error {
		if err := OwnerOrAdmin(c, owner.String()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	}

	if got := requestStatus(t, newIdentityApp(owner.String(), constants.RoleInstructor, guard)); got != fiber.StatusOK {
		t.Fatalf("owner: status = %d, want 200", got)
	}
	if got := requestStatus(t, newIdentityApp(uuid.NewString(), constants.RoleInstructor, guard)); got != fiber.StatusForbidden {
		t.Fatalf("other instructor: status = %d, want 403", got)
	}
	if got := requestStatus(t, newIdentityApp(uuid.NewString(), constants.RoleAdmin, guard)); got != fiber.StatusOK {
		t.Fatalf("admin: status = %d, want 200", got)
	}
	if got := requestStatus(t, newIdentityApp("", "", guard)); got != fiber.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", got)
	}
}

func TestRequireRoles(t *testing.T) {
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	chain := func(uid, role string) *fiber.App {
		app := fiber.New()
		app.Get("/t", func(c *fiber.Ctx) error {
			if uid != "" {
				c.Locals("user_id", uid)
			}
			if role != "" {
				c.Locals("user_role", role)
			}
			return c.Next()
		}, RequireInstructor(), ok)
		return app
	}

	if got := requestStatus(t, chain(uuid.NewString(), constants.RoleInstructor)); got != fiber.StatusOK {
		t.Fatalf("instructor: status = %d, want 200", got)
	}
	if got := requestStatus(t, chain(uuid.NewString(), constants.RoleAdmin)); got != fiber.StatusOK {
		t.Fatalf("admin: status = %d, want 200", got)
	}
	if got := requestStatus(t, chain(uuid.NewString(), constants.RoleStudent)); got != fiber.StatusForbidden {
		t.Fatalf("student: status = %d, want 403", got)
	}
	if got := requestStatus(t, chain("", "")); got != fiber.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", got)
	}
}
