// file: internals/features/invites/controller/invite_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/constants"
	authHelper "github.com/geodevmt/app-projeto-vida/internals/features/auth/helper"
	authModel "github.com/geodevmt/app-projeto-vida/internals/features/auth/model"
	inviteModel "github.com/geodevmt/app-projeto-vida/internals/features/invites/model"
	"github.com/geodevmt/app-projeto-vida/internals/features/invites/service"
	profileModel "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	"github.com/geodevmt/app-projeto-vida/internals/services/mailer"
)

type InviteController struct {
	DB  *gorm.DB
	Svc *service.InviteService
}

func NewInviteController(db *gorm.DB, mailSvc mailer.EmailService) *InviteController {
	return &InviteController{DB: db, Svc: service.NewInviteService(db, mailSvc)}
}

/* =========================================================
   POST /api/invite
   Contrato herdado do cliente web: corpo {email, fullName},
   respostas {message} / {error} sem envelope.
========================================================= */
func (ic *InviteController) SendInvite(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email e Nome são obrigatórios",
		})
	}
	input.Email = strings.TrimSpace(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Email == "" || input.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email e Nome são obrigatórios",
		})
	}
	if !authHelper.IsValidEmail(input.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Formato de e-mail inválido",
		})
	}

	invitedBy, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if err := ic.Svc.CreateAndSend(c.Context(), input.Email, input.FullName, invitedBy); err != nil {
		log.Printf("[invite] send failed email=%s: %v", input.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Convite enviado com sucesso!",
	})
}

/* =========================================================
   POST /api/invite/accept
   Token do magic link + senha -> conta de professor.
========================================================= */
func (ic *InviteController) AcceptInvite(c *fiber.Ctx) error {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if strings.TrimSpace(input.Token) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Token é obrigatório")
	}
	if len(input.Password) < 8 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "A senha deve ter no mínimo 8 caracteres")
	}

	inv, err := ic.Svc.FindActive(c.Context(), input.Token)
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Convite inválido ou expirado")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	hashed, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar a senha")
	}

	user := authModel.UserModel{
		Email:    inv.Email,
		Password: hashed,
		IsActive: true,
	}
	err = ic.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := profileModel.ProfileModel{
			ID:       user.ID,
			FullName: &inv.FullName,
			Email:    &user.Email,
			Role:     constants.RoleTeacher,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		res := tx.Model(&inviteModel.InviteModel{}).
			Where("id = ? AND accepted_at IS NULL", inv.ID).
			Update("accepted_at", gorm.Expr("NOW()"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return service.ErrInviteNotFound
		}
		return nil
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return helpers.JsonError(c, fiber.StatusConflict, "Email já cadastrado")
		}
		if errors.Is(err, service.ErrInviteNotFound) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Convite inválido ou expirado")
		}
		log.Printf("[invite] accept failed: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar a conta")
	}

	return helpers.JsonCreated(c, "Conta de professor criada com sucesso", fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": inv.FullName,
		"role":      constants.RoleTeacher,
	})
}
