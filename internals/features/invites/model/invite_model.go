// file: internals/features/invites/model/invite_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// InviteModel: convite de professor enviado por email. O token bruto vai
// só no link, aqui fica apenas o hash.
type InviteModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Email      string     `gorm:"type:varchar(255);not null;index:idx_invites_email;column:email" json:"email"`
	FullName   string     `gorm:"type:varchar(100);not null;column:full_name" json:"full_name"`
	Role       string     `gorm:"type:varchar(20);not null;column:role" json:"role"`
	TokenHash  []byte     `gorm:"type:bytea;uniqueIndex:uq_invites_token_hash;not null;column:token_hash" json:"-"`
	InvitedBy  uuid.UUID  `gorm:"type:uuid;not null;column:invited_by" json:"invited_by"`
	ExpiresAt  time.Time  `gorm:"not null;column:expires_at" json:"expires_at"`
	AcceptedAt *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (InviteModel) TableName() string {
	return "invites"
}
