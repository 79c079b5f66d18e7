// file: internals/features/documents/controller/document_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/geodevmt/app-projeto-vida/internals/features/documents/dto"
	model "github.com/geodevmt/app-projeto-vida/internals/features/documents/model"
	"github.com/geodevmt/app-projeto-vida/internals/features/documents/service"
	helpers "github.com/geodevmt/app-projeto-vida/internals/helpers"
	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
)

type DocumentController struct {
	DB     *gorm.DB
	Upload *service.UploadService
}

func NewDocumentController(db *gorm.DB, blob ossSvc.BlobService) *DocumentController {
	return &DocumentController{
		DB:     db,
		Upload: service.NewUploadService(db, blob),
	}
}

/* =========================================================
   POST /api/u/documents  (multipart: campo "file")
========================================================= */
func (dc *DocumentController) UploadDocument(c *fiber.Ctx) error {
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

	f, err := fh.Open()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Não foi possível ler o arquivo")
	}
	defer f.Close()

	reqid, _ := c.Locals("reqid").(string)
	doc, err := dc.Upload.Upload(c.Context(), service.UploadInput{
		UserID:      userID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		SizeBytes:   fh.Size,
		Body:        f,
		Progress: func(pct int) {
			log.Printf("[UPLOAD] id=%s user=%s %d%%", reqid, userID, pct)
		},
	})
	if err != nil {
		log.Printf("[documents] upload failed: %v", err)
		return helpers.FromFiberError(c, err, "Falha ao enviar o documento")
	}

	// conclusão: devolve também a lista atualizada, que o cliente usa
	// para re-renderizar o histórico sem segunda chamada
	var docs []model.DocumentModel
	if err := dc.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		log.Printf("[documents] refresh list failed: %v", err)
	}

	return helpers.JsonCreated(c, "Documento enviado com sucesso", fiber.Map{
		"document":  dto.NewDocumentResponse(doc),
		"documents": dto.NewDocumentResponses(docs),
	})
}

/* =========================================================
   GET /api/u/documents?page=&per_page=
   Histórico de envios da própria conta, mais recente primeiro.
========================================================= */
func (dc *DocumentController) ListMyDocuments(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	page := helpers.ParsePage(c, helpers.DefaultPageOpts)

	base := dc.DB.WithContext(c.Context()).
		Model(&model.DocumentModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var docs []model.DocumentModel
	if err := base.
		Order("created_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&docs).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helpers.JsonList(c, "OK", fiber.Map{
		"items": dto.NewDocumentResponses(docs),
		"meta":  helpers.BuildPageMeta(total, page),
	})
}
