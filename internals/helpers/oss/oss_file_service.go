// file: internals/helpers/oss/oss_file_service.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/*
BlobService é a fachada de storage usada pelos controllers/serviços.

- UploadDocument: grava bytes crus numa chave nova do espaço "uploads";
  a chave nunca é sobrescrita (falha em colisão).
- UploadAvatar: reencoda a imagem como WebP e grava na chave fixa do
  usuário em "avatars", sobrescrevendo a anterior.
*/

type BlobService interface {
	UploadDocument(ctx context.Context, key string, r io.Reader, contentType string) (publicURL string, err error)
	UploadAvatar(ctx context.Context, accountID uuid.UUID, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByKey(ctx context.Context, key string) error
	PublicURL(key string) string
}

// --------------------------------------------------
// Implementação Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	uploads *OSSService
	avatars *OSSService
}

var _ BlobService = (*OSSBlobService)(nil)

func NewOSSBlobServiceFromEnv() (*OSSBlobService, error) {
	up, err := NewOSSServiceFromEnv("uploads")
	if err != nil {
		return nil, err
	}
	av, err := NewOSSServiceFromEnv("avatars")
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{uploads: up, avatars: av}, nil
}

func (b *OSSBlobService) UploadDocument(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if err := b.uploads.PutObject(ctx, key, r, contentType, false); err != nil {
		if IsAlreadyExists(err) {
			return "", fiber.NewError(fiber.StatusConflict, "Já existe um arquivo nesse caminho")
		}
		return "", fmt.Errorf("upload para o storage: %w", err)
	}
	return b.uploads.PublicURL(key), nil
}

func (b *OSSBlobService) UploadAvatar(ctx context.Context, accountID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Arquivo não encontrado")
	}
	if accountID == uuid.Nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Conta inválida")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir arquivo: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Formato não suportado (jpg/png/webp)")
	}

	// chave fixa por conta: re-upload sobrescreve no lugar
	key := fmt.Sprintf("%s/avatar.webp", accountID.String())
	if err := b.avatars.PutObject(ctx, key, bytes.NewReader(data), "image/webp", true); err != nil {
		return "", fmt.Errorf("upload do avatar: %w", err)
	}
	return b.avatars.PublicURL(key), nil
}

func (b *OSSBlobService) DeleteByKey(ctx context.Context, key string) error {
	if err := b.uploads.DeleteObject(ctx, key); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (b *OSSBlobService) PublicURL(key string) string {
	return b.uploads.PublicURL(key)
}

// --------------------------------------------------
// Helpers para controllers
// --------------------------------------------------

func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// --------------------------------------------------
// Mock para testes
// --------------------------------------------------

type MockBlobService struct {
	UploadDocumentFn func(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	UploadAvatarFn   func(ctx context.Context, accountID uuid.UUID, fh *multipart.FileHeader) (string, error)
	DeleteByKeyFn    func(ctx context.Context, key string) error
	PublicURLFn      func(key string) string
}

var _ BlobService = (*MockBlobService)(nil)

func (m *MockBlobService) UploadDocument(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if m.UploadDocumentFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadDocumentFn(ctx, key, r, contentType)
}

func (m *MockBlobService) UploadAvatar(ctx context.Context, accountID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if m.UploadAvatarFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadAvatarFn(ctx, accountID, fh)
}

func (m *MockBlobService) DeleteByKey(ctx context.Context, key string) error {
	if m.DeleteByKeyFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByKeyFn(ctx, key)
}

func (m *MockBlobService) PublicURL(key string) string {
	if m.PublicURLFn == nil {
		return ""
	}
	return m.PublicURLFn(key)
}
