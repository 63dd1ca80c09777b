package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/cache"
	"github.com/fitcoachbr/coach-api/internal/httperr"
	"github.com/fitcoachbr/coach-api/internal/httpresp"
	"github.com/fitcoachbr/coach-api/internal/media"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/models"
	"github.com/fitcoachbr/coach-api/internal/storage"
)

const maxVideoUploadBytes = 500 * 1024 * 1024
const maxThumbnailUploadBytes = 5 * 1024 * 1024

// ======================================================
// HANDLER
// ======================================================

type WorkoutVideoHandler struct {
	db      *gorm.DB
	storage *storage.Client
	urls    *cache.SignedURLCache
}

func NewWorkoutVideoHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	urls *cache.SignedURLCache,
) *WorkoutVideoHandler {
	return &WorkoutVideoHandler{
		db:      db,
		storage: storageClient,
		urls:    urls,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWorkoutVideoRequest struct {
	StudentID   *uint  `json:"studentId"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DurationMin int    `json:"durationMin"`
}

type UpdateWorkoutVideoRequest struct {
	StudentID   *uint   `json:"studentId,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	DurationMin *int    `json:"durationMin,omitempty"`
}

// ======================================================
// CRUD
// ======================================================

func (h *WorkoutVideoHandler) List(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	q := h.db.Where("coach_id = ?", coachID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		q = q.Where("student_id = ?", studentIDStr)
	}

	var videos []models.WorkoutVideo
	if err := q.
		Order("id ASC").
		Find(&videos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_videos", "Erro ao listar vídeos.")
		return
	}

	httpresp.List(c, videos)
}

func (h *WorkoutVideoHandler) Create(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	var req CreateWorkoutVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	video := models.WorkoutVideo{
		CoachID:     coachID,
		StudentID:   req.StudentID,
		Title:       req.Title,
		Description: req.Description,
		Category:    strings.ToLower(req.Category),
		DurationMin: req.DurationMin,
	}

	if err := h.db.Create(&video).Error; err != nil {
		httperr.Internal(c, "failed_to_create_video", "Erro ao criar vídeo.")
		return
	}

	c.JSON(201, video)
}

func (h *WorkoutVideoHandler) Update(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	video, ok := h.findVideo(c, coachID)
	if !ok {
		return
	}

	var req UpdateWorkoutVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.StudentID != nil {
		video.StudentID = req.StudentID
	}
	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.Category != nil {
		video.Category = strings.ToLower(*req.Category)
	}
	if req.DurationMin != nil {
		video.DurationMin = *req.DurationMin
	}

	if err := h.db.Save(video).Error; err != nil {
		httperr.Internal(c, "failed_to_update_video", "Erro ao atualizar vídeo.")
		return
	}

	c.JSON(200, video)
}

func (h *WorkoutVideoHandler) Delete(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	video, ok := h.findVideo(c, coachID)
	if !ok {
		return
	}

	// storage objects go first; a leftover row is recoverable, a
	// leaked object is not
	ctx := c.Request.Context()
	if video.ObjectKey != "" {
		if err := h.storage.Delete(ctx, video.ObjectKey); err != nil {
			httperr.Internal(c, "failed_to_delete_video_file", "Erro ao excluir arquivo do vídeo.")
			return
		}
		h.urls.Invalidate(ctx, video.ObjectKey)
	}
	if video.ThumbnailKey != "" {
		_ = h.storage.Delete(ctx, video.ThumbnailKey)
	}

	if err := h.db.Delete(video).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_video", "Erro ao excluir vídeo.")
		return
	}

	c.JSON(200, gin.H{"message": "Vídeo excluído."})
}

// ======================================================
// UPLOAD
// ======================================================

func (h *WorkoutVideoHandler) Upload(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	video, ok := h.findVideo(c, coachID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	if fileHeader.Size > maxVideoUploadBytes {
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

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	key := storage.ObjectKey("videos", fileHeader.Filename)

	ctx := c.Request.Context()
	if err := h.storage.Upload(ctx, key, contentType, data); err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar arquivo.")
		return
	}

	if video.ObjectKey != "" {
		_ = h.storage.Delete(ctx, video.ObjectKey)
		h.urls.Invalidate(ctx, video.ObjectKey)
	}

	video.ObjectKey = key
	if err := h.db.Save(video).Error; err != nil {
		httperr.Internal(c, "failed_to_update_video", "Erro ao salvar vídeo.")
		return
	}

	c.JSON(200, video)
}

func (h *WorkoutVideoHandler) UploadThumbnail(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	video, ok := h.findVideo(c, coachID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	if fileHeader.Size > maxThumbnailUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem excede o tamanho máximo.")
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

	thumb, err := media.ToWebPThumbnail(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	key := storage.ObjectKey("thumbnails", fileHeader.Filename) + ".webp"

	ctx := c.Request.Context()
	if err := h.storage.Upload(ctx, key, "image/webp", thumb); err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	if video.ThumbnailKey != "" {
		_ = h.storage.Delete(ctx, video.ThumbnailKey)
	}

	video.ThumbnailKey = key
	if err := h.db.Save(video).Error; err != nil {
		httperr.Internal(c, "failed_to_update_video", "Erro ao salvar vídeo.")
		return
	}

	c.JSON(200, video)
}

// ======================================================
// STREAM (SIGNED URL)
// ======================================================

func (h *WorkoutVideoHandler) Stream(c *gin.Context) {
	coachID := c.MustGet(middleware.ContextCoachID).(uint)

	video, ok := h.findVideo(c, coachID)
	if !ok {
		return
	}

	if video.ObjectKey == "" {
		httperr.NotFound(c, "video_file_not_found", "Vídeo ainda não possui arquivo.")
		return
	}

	ctx := c.Request.Context()

	if url, expiresAt, hit := h.urls.Get(ctx, video.ObjectKey); hit {
		c.JSON(200, gin.H{"url": url, "expiresAt": expiresAt})
		return
	}

	url, expiresAt, err := h.storage.SignedURL(ctx, video.ObjectKey)
	if err != nil {
		httperr.Internal(c, "signed_url_failed", "Erro ao gerar URL de reprodução.")
		return
	}

	h.urls.Set(ctx, video.ObjectKey, url, expiresAt)

	c.JSON(200, gin.H{
		"url":       url,
		"expiresAt": expiresAt,
	})
}

func (h *WorkoutVideoHandler) findVideo(c *gin.Context, coachID uint) (*models.WorkoutVideo, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var video models.WorkoutVideo
	if err := h.db.
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&video).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "video_not_found", "Vídeo não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_video", "Erro ao buscar vídeo.")
		return nil, false
	}

	return &video, true
}
