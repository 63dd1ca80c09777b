package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/cache"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/httpresp"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
	"github.com/fitcoachbr/coach-api/internal/storage"
)

const maxPDFUploadBytes = 20 * 1024 * 1024

type WorkoutPDFHandler struct {
	db      *gorm.DB
	storage *storage.Client
	urls    *cache.SignedURLCache
}

func NewWorkoutPDFHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	urls *cache.SignedURLCache,
) *WorkoutPDFHandler {
	return &WorkoutPDFHandler{
		db:      db,
		storage: storageClient,
		urls:    urls,
	}
}

type CreateWorkoutPDFRequest struct {
	StudentID *uint  `json:"studentId"`
	Title     string `json:"title" binding:"required"`
}

func (h *WorkoutPDFHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	q := h.db.Where("coach_id = ?", coachID)

	if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		q = q.Where("student_id = ?", studentIDStr)
	}

	var pdfs []models.WorkoutPDF
	if err := q.
		Order("id ASC").
		Find(&pdfs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_pdfs", "Erro ao listar PDFs.")
		return
	}

	httpresp.List(c, pdfs)
}

func (h *WorkoutPDFHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateWorkoutPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pdf := models.WorkoutPDF{
		CoachID:   coachID,
		StudentID: req.StudentID,
		Title:     req.Title,
	}

	if err := h.db.Create(&pdf).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pdf", "Erro ao criar PDF.")
		return
	}

	c.JSON(201, pdf)
}

func (h *WorkoutPDFHandler) Upload(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	pdf, ok := h.findPDF(c, coachID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	if fileHeader.Size > maxPDFUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo excede o tamanho máximo.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}

	key := storage.ObjectKey("pdfs", fileHeader.Filename)

	ctx := c.Request.Context()
	if err := h.storage.Upload(ctx, key, "application/pdf", data); err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar arquivo.")
		return
	}

	if pdf.ObjectKey != "" {
		_ = h.storage.Delete(ctx, pdf.ObjectKey)
		h.urls.Invalidate(ctx, pdf.ObjectKey)
	}

	pdf.ObjectKey = key
	if err := h.db.Save(pdf).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pdf", "Erro ao salvar PDF.")
		return
	}

	c.JSON(200, pdf)
}

func (h *WorkoutPDFHandler) Download(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	pdf, ok := h.findPDF(c, coachID)
	if !ok {
		return
	}

	if pdf.ObjectKey == "" {
		httperr.NotFound(c, "pdf_file_not_found", "PDF ainda não possui arquivo.")
		return
	}

	ctx := c.Request.Context()

	if url, expiresAt, hit := h.urls.Get(ctx, pdf.ObjectKey); hit {
		c.JSON(200, gin.H{"url": url, "expiresAt": expiresAt})
		return
	}

	url, expiresAt, err := h.storage.SignedURL(ctx, pdf.ObjectKey)
	if err != nil {
		httperr.Internal(c, "signed_url_failed", "Erro ao gerar URL de download.")
		return
	}

	h.urls.Set(ctx, pdf.ObjectKey, url, expiresAt)

	c.JSON(200, gin.H{
		"url":       url,
		"expiresAt": expiresAt,
	})
}

func (h *WorkoutPDFHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	pdf, ok := h.findPDF(c, coachID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if pdf.ObjectKey != "" {
		if err := h.storage.Delete(ctx, pdf.ObjectKey); err != nil {
			httperr.Internal(c, "failed_to_delete_pdf_file", "Erro ao excluir arquivo do PDF.")
			return
		}
		h.urls.Invalidate(ctx, pdf.ObjectKey)
	}

	if err := h.db.Delete(pdf).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_pdf", "Erro ao excluir PDF.")
		return
	}

	c.JSON(200, gin.H{"message": "PDF excluído."})
}

func (h *WorkoutPDFHandler) findPDF(c *gin.Context, coachID uint) (*models.WorkoutPDF, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var pdf models.WorkoutPDF
	if err := h.db.
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&pdf).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "pdf_not_found", "PDF não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_pdf", "Erro ao buscar PDF.")
		return nil, false
	}

	return &pdf, true
}
