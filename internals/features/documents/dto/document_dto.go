// file: internals/features/documents/dto/document_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
)

type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   string    `json:"created_at"`
}

func NewDocumentResponse(m *model.DocumentModel) DocumentResponse {
	return DocumentResponse{
		ID:          m.ID,
		FileName:    m.FileName,
		FileURL:     m.FileURL,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewDocumentResponses(items []model.DocumentModel) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewDocumentResponse(&items[i]))
	}
	return out
}
