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

func TestCourseRoutesRegistered(t *testing.T) {
	app := fiber.New()
	api := app.Group("/api")
	CoursePublicRoutes(api, nil)
	CourseInstructorRoutes(api, nil)
	CourseAdminRoutes(app.Group("/api/admin"), nil)

	for _, want := range [][2]string{
		{fiber.MethodGet, "/api/courses"},
		{fiber.MethodGet, "/api/courses/:id"},
		{fiber.MethodPost, "/api/courses"},
		{fiber.MethodGet, "/api/admin/courses"},
	} {
		if !hasRoute(app, want[0], want[1]) {
			t.Fatalf("route %s %s not registered", want[0], want[1])
		}
	}
}
