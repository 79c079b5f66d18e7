package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	helper "github.com/geodevmt/app-projeto-vida/internals/helpers"
)

func newRoleTestApp(role string) (*fiber.App, *bool) {
	handlerRan := false
	app := fiber.New()
	app.Get("/api/t/students",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals(helper.LocUserRole, role)
			}
			return c.Next()
		},
		OnlyRoles(constants.ErrAccessDeniedTeacherArea, constants.RoleTeacher),
		func(c *fiber.Ctx) error {
			handlerRan = true
			return c.SendString("ok")
		},
	)
	return app, &handlerRan
}

func TestOnlyRolesAllowsTeacher(t *testing.T) {
	app, handlerRan := newRoleTestApp(constants.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/t/students", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !*handlerRan {
		t.Fatal("handler should have run for teacher role")
	}
}

func TestOnlyRolesBlocksStudentWithoutRunningHandler(t *testing.T) {
	app, handlerRan := newRoleTestApp(constants.RoleStudent)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/t/students", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if *handlerRan {
		t.Fatal("handler must not run for a student on a teacher route")
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != constants.ErrAccessDeniedTeacherArea {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestOnlyRolesRejectsMissingRole(t *testing.T) {
	app, handlerRan := newRoleTestApp("")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/t/students", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if *handlerRan {
		t.Fatal("handler must not run without role information")
	}
}
