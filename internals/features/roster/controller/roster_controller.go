// file: internals/features/roster/controller/roster_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	"github.com/geodevmt/app-projeto-vida/internals/features/roster/dto"

	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
)

type RosterController struct {
	DB *gorm.DB
}

func NewRosterController(db *gorm.DB) *RosterController {
	return &RosterController{DB: db}
}

// escapeLike neutraliza os curingas do ILIKE para busca literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

/* =========================================================
   GET /api/t/students?q=
   Lista completa de alunos com documentos, ordenada por nome.
   Sem paginação: a tabela do professor materializa tudo.
   ?q filtra por nome OU escola (case-insensitive).
========================================================= */
func (rc *RosterController) ListStudents(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	tx := rc.DB.WithContext(c.Context()).
		Model(&profileModel.ProfileModel{}).
		Where("role = ?", constants.RoleStudent).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("full_name ASC")

	if q != "" {
		like := "%" + escapeLike(q) + "%"
		tx = tx.Where("full_name ILIKE ? OR school ILIKE ?", like, like)
	}

	var students []profileModel.ProfileModel
	if err := tx.Find(&students).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helpers.JsonList(c, "OK", dto.NewStudentResponses(students))
}
