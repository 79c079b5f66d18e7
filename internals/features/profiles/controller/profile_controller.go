// file: internals/features/profiles/controller/profile_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/features/profiles/dto"
	model "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
)

type ProfileController struct {
	DB   *gorm.DB
	Blob ossSvc.BlobService
}

func NewProfileController(db *gorm.DB, blob ossSvc.BlobService) *ProfileController {
	return &ProfileController{DB: db, Blob: blob}
}

// validationToMap: validator/v10 -> {campo: [mensagens]}
func validationToMap(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], "valor inválido para "+field)
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}

/* =========================================================
   GET /api/u/profile
========================================================= */
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var profile model.ProfileModel
	if err := pc.DB.WithContext(c.Context()).
		First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Perfil não encontrado")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helpers.JsonOK(c, "OK", dto.NewProfileResponse(&profile))
}

/* =========================================================
   PUT /api/u/profile
   Atualização parcial. Role e email nunca mudam por aqui.
========================================================= */
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	body, err := dto.BindUpdate(c)
	if err != nil {
		return helpers.JsonValidationError(c, validationToMap(err))
	}

	var profile model.ProfileModel
	if err := pc.DB.WithContext(c.Context()).
		First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Perfil não encontrado")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	body.ApplyToModelPartial(&profile)

	if err := pc.DB.WithContext(c.Context()).
		Model(&model.ProfileModel{}).
		Where("id = ?", userID).
		Select("full_name", "school", "class_name", "period", "birth_date",
			"about_me", "dreams", "skills", "last_updated_at").
		Updates(&profile).Error; err != nil {
		log.Printf("[profile] update failed: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao salvar o perfil")
	}

	return helpers.JsonUpdated(c, "Perfil atualizado com sucesso", dto.NewProfileResponse(&profile))
}

/* =========================================================
   POST /api/u/profile/avatar  (multipart: campo "file")
   Sempre regrava avatars/{id}/avatar.webp por cima.
========================================================= */
func (pc *ProfileController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if !ossSvc.IsMultipart(c) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Envie o arquivo como multipart/form-data")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Arquivo ausente (campo 'file')")
	}

	publicURL, err := pc.Blob.UploadAvatar(c.Context(), userID, fh)
	if err != nil {
		log.Printf("[avatar] upload failed: %v", err)
		return helpers.FromFiberError(c, err, "Falha ao enviar o avatar")
	}

	if err := pc.DB.WithContext(c.Context()).
		Model(&model.ProfileModel{}).
		Where("id = ?", userID).
		Update("avatar_url", publicURL).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Falha ao salvar o avatar")
	}

	return helpers.JsonUpdated(c, "Avatar atualizado com sucesso", fiber.Map{
		"avatar_url": publicURL,
	})
}
