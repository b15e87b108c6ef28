package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func hasRoute(app *fiber.App, method, path string) bool {
	for _, r := range app.GetRoutes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestPaymentRoutesRegistered(t *testing.T) {
	app := fiber.New()
	api := app.Group("/api")
	PaymentWebhookRoutes(api, nil, nil)
	PaymentUserRoutes(api, nil, nil)
	PaymentAdminRoutes(app.Group("/api/admin"), nil, nil)

	for _, want := range [][2]string{
		{fiber.MethodPost, "/api/payments/webhook"},
		{fiber.MethodPost, "/api/payments/create-checkout"},
		{fiber.MethodGet, "/api/payments/history"},
		{fiber.MethodGet, "/api/admin/purchases"},
	} {
		if !hasRoute(app, want[0], want[1]) {
			t.Fatalf("route %s %s not registered", want[0], want[1])
		}
	}
}
