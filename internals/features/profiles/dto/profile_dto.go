// file: internals/features/profiles/dto/profile_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "github.com/geodevmt/app-projeto-vida/internals/features/profiles/model"
)

/* =========================
 * Validator instance
 * ========================= */
var validate = validator.New()

const dateLayout = "2006-01-02"

/* =========================
 * Request DTO
 * ========================= */

// PUT /api/u/profile — atualização parcial.
// Role e email NÃO aparecem aqui: são fixos após o cadastro.
type UpdateProfileDTO struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=3,max=100"`
	School    *string `json:"school" validate:"omitempty,max=120"`
	ClassName *string `json:"class_name" validate:"omitempty,max=30"`
	Period    *string `json:"period" validate:"omitempty,oneof=Manhã Tarde Noite"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	AboutMe   *string `json:"about_me" validate:"omitempty,max=2000"`
	Dreams    *string `json:"dreams" validate:"omitempty,max=2000"`
	Skills    *string `json:"skills" validate:"omitempty,max=2000"`
}

func (d *UpdateProfileDTO) Sanitize() {
	trim := func(p **string) {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	trim(&d.FullName)
	trim(&d.School)
	trim(&d.ClassName)
	trim(&d.Period)
	trim(&d.AboutMe)
	trim(&d.Dreams)
	trim(&d.Skills)
}

func (d *UpdateProfileDTO) Validate() error {
	return validate.Struct(d)
}

// ApplyToModelPartial: só sobrescreve campos != nil.
func (d *UpdateProfileDTO) ApplyToModelPartial(m *model.ProfileModel) {
	if d.FullName != nil {
		m.FullName = d.FullName
	}
	if d.School != nil {
		m.School = d.School
	}
	if d.ClassName != nil {
		m.ClassName = d.ClassName
	}
	if d.Period != nil {
		m.Period = d.Period
	}
	if d.BirthDate != nil {
		if t, err := time.Parse(dateLayout, *d.BirthDate); err == nil {
			bd := datatypes.Date(t)
			m.BirthDate = &bd
		}
	}
	if d.AboutMe != nil {
		m.AboutMe = d.AboutMe
	}
	if d.Dreams != nil {
		m.Dreams = d.Dreams
	}
	if d.Skills != nil {
		m.Skills = d.Skills
	}
	now := time.Now().UTC()
	m.LastUpdatedAt = &now
}

/* =========================
 * Response DTO
 * ========================= */

type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      *string   `json:"full_name"`
	Email         *string   `json:"email"`
	AvatarURL     *string   `json:"avatar_url"`
	School        *string   `json:"school"`
	ClassName     *string   `json:"class_name"`
	Period        *string   `json:"period"`
	BirthDate     *string   `json:"birth_date"`
	AboutMe       *string   `json:"about_me"`
	Dreams        *string   `json:"dreams"`
	Skills        *string   `json:"skills"`
	Role          string    `json:"role"`
	LastUpdatedAt *string   `json:"last_updated_at,omitempty"`
}

func NewProfileResponse(m *model.ProfileModel) ProfileResponse {
	var birthDate, lastUpdated *string
	if m.BirthDate != nil {
		s := time.Time(*m.BirthDate).Format(dateLayout)
		birthDate = &s
	}
	if m.LastUpdatedAt != nil {
		s := m.LastUpdatedAt.UTC().Format(time.RFC3339)
		lastUpdated = &s
	}
	return ProfileResponse{
		ID:            m.ID,
		FullName:      m.FullName,
		Email:         m.Email,
		AvatarURL:     m.AvatarURL,
		School:        m.School,
		ClassName:     m.ClassName,
		Period:        m.Period,
		BirthDate:     birthDate,
		AboutMe:       m.AboutMe,
		Dreams:        m.Dreams,
		Skills:        m.Skills,
		Role:          m.Role,
		LastUpdatedAt: lastUpdated,
	}
}

// BindUpdate: JSON -> sanitize -> validate.
func BindUpdate(c *fiber.Ctx) (*UpdateProfileDTO, error) {
	var body UpdateProfileDTO
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}
	body.Sanitize()
	if err := body.Validate(); err != nil {
		return nil, err
	}
	return &body, nil
}
