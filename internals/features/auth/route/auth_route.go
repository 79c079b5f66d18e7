// file: internals/features/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/geodevmt/app-projeto-vida/internals/features/auth/controller"
	rateLimiter "github.com/geodevmt/app-projeto-vida/internals/middlewares"
	authMiddleware "github.com/geodevmt/app-projeto-vida/internals/middlewares/auth"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, mail mailer.EmailService) {
	authController := controller.NewAuthController(db, mail)

	// ==========================
	// Base: /api/auth
	// ==========================
	base := app.Group("/api/auth")

	// 🔓 Público
	base.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	base.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	base.Post("/refresh-token", authController.RefreshToken)
	base.Post("/forgot-password", rateLimiter.EmailActionRateLimiter(), authController.ForgotPassword)
	base.Post("/reset-password", authController.ResetPassword)

	// 🔒 Requer token válido
	protected := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}
