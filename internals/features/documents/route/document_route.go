// file: internals/features/documents/route/document_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/geodevmt/app-projeto-vida/internals/features/documents/controller"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
	authMiddleware "github.com/geodevmt/app-projeto-vida/internals/middlewares/auth"
)

// Base: /api/u/documents — documentos da conta autenticada.
func DocumentRoutes(app *fiber.App, db *gorm.DB, blob ossSvc.BlobService) {
	documentController := controller.NewDocumentController(db, blob)

	group := app.Group("/api/u/documents", authMiddleware.AuthMiddleware(db))
	group.Post("/", documentController.UploadDocument)
	group.Get("/", documentController.ListMyDocuments)
}
