// file: internals/features/roster/route/roster_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	controller "github.com/geodevmt/app-projeto-vida/internals/features/roster/controller"
	authMiddleware "github.com/geodevmt/app-projeto-vida/internals/middlewares/auth"
)

// Base: /api/t — área restrita aos professores.
func RosterRoutes(app *fiber.App, db *gorm.DB) {
	rosterController := controller.NewRosterController(db)

	group := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.ErrAccessDeniedTeacherArea, constants.RoleTeacher),
	)
	group.Get("/students", rosterController.ListStudents)
}
