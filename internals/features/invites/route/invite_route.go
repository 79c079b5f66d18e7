// file: internals/features/invites/route/invite_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	controller "github.com/geodevmt/app-projeto-vida/internals/features/invites/controller"
	rateLimiter "github.com/geodevmt/app-projeto-vida/internals/middlewares"
	authMiddleware "github.com/geodevmt/app-projeto-vida/internals/middlewares/auth"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

func InviteRoutes(app *fiber.App, db *gorm.DB, mailSvc mailer.EmailService) {
	inviteController := controller.NewInviteController(db, mailSvc)

	// 🔒 Enviar convite: só professor.
	app.Post("/api/invite",
		rateLimiter.EmailActionRateLimiter(),
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.ErrAccessDeniedTeacherArea, constants.RoleTeacher),
		inviteController.SendInvite,
	)

	// 🔓 Aceitar convite: público (o token é a credencial).
	app.Post("/api/invite/accept", inviteController.AcceptInvite)
}
