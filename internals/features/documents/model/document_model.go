package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentModel: um registro por arquivo enviado. Criado exclusivamente
// pelo pipeline de upload; nunca atualizado; sem rota de exclusão (a
// limpeza de órfãos é feita fora de banda pelo reaper).
type DocumentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_user_id" json:"user_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	FilePath    string    `gorm:"size:512;not null;uniqueIndex" json:"file_path"`
	FileURL     string    `gorm:"type:text;not null" json:"file_url"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DocumentModel) TableName() string {
	return "documents"
}
