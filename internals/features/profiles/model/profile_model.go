package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	documentModel "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
)

// ProfileModel: um registro por conta, mesma ID de users. O campo role é
// fixado na criação (cadastro → student, convite → teacher) e nunca entra
// em payload de atualização.
type ProfileModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  *string         `gorm:"size:120;column:full_name" json:"full_name,omitempty"`
	Email     *string         `gorm:"size:255;column:email" json:"email,omitempty"`
	AvatarURL *string         `gorm:"type:text;column:avatar_url" json:"avatar_url,omitempty"`
	School    *string         `gorm:"size:120;column:school" json:"school,omitempty"`
	ClassName *string         `gorm:"size:50;column:class_name" json:"class_name,omitempty"`
	Period    *string         `gorm:"size:20;column:period" json:"period,omitempty"`
	BirthDate *datatypes.Date `gorm:"column:birth_date" json:"birth_date,omitempty"`
	AboutMe   *string         `gorm:"type:text;column:about_me" json:"about_me,omitempty"`
	Dreams    *string         `gorm:"type:text;column:dreams" json:"dreams,omitempty"`
	Skills    *string         `gorm:"type:text;column:skills" json:"skills,omitempty"`
	Role      string          `gorm:"type:varchar(20);not null;column:role" json:"role"`

	LastUpdatedAt *time.Time `gorm:"column:last_updated_at" json:"last_updated_at,omitempty"`

	// 1:N com documents pela ID da conta (usado no roster do professor)
	Documents []documentModel.DocumentModel `gorm:"foreignKey:UserID;references:ID" json:"documents,omitempty"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
