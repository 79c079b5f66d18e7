// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "github.com/geodevmt/app-projeto-vida/internals/features/auth/route"
	documentRoute "github.com/geodevmt/app-projeto-vida/internals/features/documents/route"
	inviteRoute "github.com/geodevmt/app-projeto-vida/internals/features/invites/route"
	profileRoute "github.com/geodevmt/app-projeto-vida/internals/features/profiles/route"
	rosterRoute "github.com/geodevmt/app-projeto-vida/internals/features/roster/route"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, blob ossSvc.BlobService, mailSvc mailer.EmailService) {
	startTime = time.Now()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, mailSvc)

	// ===================== ÁREA DA CONTA (/api/u) =====================
	log.Println("[INFO] Setting up ProfileRoutes...")
	profileRoute.ProfileRoutes(app, db, blob)

	log.Println("[INFO] Setting up DocumentRoutes...")
	documentRoute.DocumentRoutes(app, db, blob)

	// ===================== ÁREA DO PROFESSOR (/api/t) =====================
	log.Println("[INFO] Setting up RosterRoutes...")
	rosterRoute.RosterRoutes(app, db)

	// ===================== CONVITES =====================
	log.Println("[INFO] Setting up InviteRoutes...")
	inviteRoute.InviteRoutes(app, db, mailSvc)
}
