// file: internals/features/documents/service/upload_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
)

const MaxUploadBytes int64 = 10_485_760 // 10MB

const (
	MsgInvalidType = "Formato inválido. Apenas PDF ou Word (.doc, .docx)."
	MsgTooLarge    = "Arquivo muito grande. Máximo 10MB."
)

// Tipos aceitos no upload de documentos.
var AllowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DocumentStore: persistência dos metadados do documento.
type DocumentStore interface {
	Create(ctx context.Context, doc *model.DocumentModel) error
}

type GormDocumentStore struct {
	DB *gorm.DB
}

func (s *GormDocumentStore) Create(ctx context.Context, doc *model.DocumentModel) error {
	return s.DB.WithContext(ctx).Create(doc).Error
}

// UploadInput: tudo que o pipeline precisa, já desacoplado do Fiber.
type UploadInput struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader

	// Progress recebe 10 (validado), 60 (enviado) e 100 (registrado).
	Progress func(pct int)
}

type UploadService struct {
	Blob  ossSvc.BlobService
	Store DocumentStore
	Now   func() time.Time
}

func NewUploadService(db *gorm.DB, blob ossSvc.BlobService) *UploadService {
	return &UploadService{
		Blob:  blob,
		Store: &GormDocumentStore{DB: db},
		Now:   time.Now,
	}
}

func (s *UploadService) progress(in UploadInput, pct int) {
	if in.Progress != nil {
		in.Progress(pct)
	}
}

// Upload executa o pipeline completo: valida, envia ao bucket, registra no
// banco. Toda validação acontece ANTES de qualquer chamada de rede. Se o
// insert falhar depois do envio, o objeto é removido para não virar órfão.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*model.DocumentModel, error) {
	if !AllowedTypes[in.ContentType] {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, MsgInvalidType)
	}
	if in.SizeBytes > MaxUploadBytes {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, MsgTooLarge)
	}
	if in.UserID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Sessão inválida")
	}
	s.progress(in, 10)

	safeName := helpers.SanitizeFileName(in.FileName)
	key := fmt.Sprintf("%s/%d_%s", in.UserID, s.Now().UnixMilli(), safeName)

	publicURL, err := s.Blob.UploadDocument(ctx, key, in.Body, in.ContentType)
	if err != nil {
		return nil, err
	}
	s.progress(in, 60)

	// FileName guarda o nome original, para exibição; só o caminho usa a
	// forma sanitizada.
	doc := &model.DocumentModel{
		UserID:      in.UserID,
		FileName:    in.FileName,
		FilePath:    key,
		FileURL:     publicURL,
		ContentType: in.ContentType,
		SizeBytes:   in.SizeBytes,
	}
	if err := s.Store.Create(ctx, doc); err != nil {
		// compensação: não deixa objeto órfão no bucket
		if derr := s.Blob.DeleteByKey(ctx, key); derr != nil {
			log.Printf("[upload] compensating delete failed key=%s: %v", key, derr)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Falha ao registrar o documento")
	}
	s.progress(in, 100)

	return doc, nil
}
