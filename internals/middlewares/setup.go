// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "github.com/geodevmt/app-projeto-vida/internals/middlewares/logger"
)

// SetupMiddlewares registra a pilha básica na ordem certa:
// recovery primeiro, depois CORS, log e rate limit global.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
