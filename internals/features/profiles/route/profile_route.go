// file: internals/features/profiles/route/profile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/geodevmt/app-projeto-vida/internals/features/profiles/controller"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
	authMiddleware "github.com/geodevmt/app-projeto-vida/internals/middlewares/auth"
)

// Base: /api/u/profile — qualquer conta autenticada (aluno ou professor).
func ProfileRoutes(app *fiber.App, db *gorm.DB, blob ossSvc.BlobService) {
	profileController := controller.NewProfileController(db, blob)

	group := app.Group("/api/u/profile", authMiddleware.AuthMiddleware(db))
	group.Get("/", profileController.GetProfile)
	group.Put("/", profileController.UpdateProfile)
	group.Post("/avatar", profileController.UploadAvatar)
}
