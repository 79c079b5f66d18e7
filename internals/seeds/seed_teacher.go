// file: internals/seeds/seed_teacher.go
package seeds

import (
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	authHelper "github.com/geodevmt/app-projeto-vida/internals/features/auth/helper"
	authModel "github.com/geodevmt/app-projeto-vida/internals/features/auth/model"
	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
)

// SeedFirstTeacher cria a primeira conta de professor a partir das ENVs
// SEED_TEACHER_EMAIL / SEED_TEACHER_PASSWORD / SEED_TEACHER_NAME.
// Sem a primeira conta não há quem envie convites; depois dela o fluxo
// normal é sempre via /api/invite. Idempotente: se o email já existe,
// não faz nada.
func SeedFirstTeacher(db *gorm.DB) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_TEACHER_EMAIL")))
	password := os.Getenv("SEED_TEACHER_PASSWORD")
	fullName := strings.TrimSpace(os.Getenv("SEED_TEACHER_NAME"))
	if email == "" {
		return
	}
	if password == "" || fullName == "" {
		log.Println("[SEED] SEED_TEACHER_EMAIL definido mas faltou PASSWORD ou NAME, pulando")
		return
	}

	var count int64
	if err := db.Model(&authModel.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		log.Printf("[SEED] consulta falhou: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[SEED] professor '%s' já existe, pulando", email)
		return
	}

	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		log.Printf("[SEED] hash da senha falhou: %v", err)
		return
	}

	user := authModel.UserModel{
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := profileModel.ProfileModel{
			ID:       user.ID,
			FullName: &fullName,
			Email:    &user.Email,
			Role:     constants.RoleTeacher,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Printf("[SEED] criação do professor falhou: %v", err)
		return
	}
	log.Printf("[SEED] professor inicial '%s' criado", email)
}
