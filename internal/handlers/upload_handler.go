package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	uploads  *service.UploadService
	maxBytes int64
	log      *zap.Logger
}

func NewUploadHandler(uploads *service.UploadService, maxBytes int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxBytes: maxBytes, log: log}
}

// Upload godoc
// @Summary Загрузка изображения
// @Description Тело запроса — сырые байты картинки
// @Tags uploads
// @Accept octet-stream
// @Produce json
// @Security BearerAuth
// @Param filename query string false "Исходное имя файла"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	body := c.Request.Body
	if h.maxBytes > 0 {
		// +1, чтобы сервис отличил "ровно лимит" от "больше лимита"
		body = http.MaxBytesReader(c.Writer, body, h.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, h.log, service.ErrUploadTooLarge)
			return
		}
		h.log.Warn("upload read failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewBadRequestError("Invalid request body"))
		return
	}

	url, err := h.uploads.Save(c.Request.Context(), c.Query("filename"), data)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}

// Serve godoc
// @Summary Получение загруженного изображения
// @Tags uploads
// @Produce octet-stream
// @Param name path string true "Имя файла"
// @Success 200 {file} binary
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/uploads/{name} [get]
func (h *UploadHandler) Serve(c *gin.Context) {
	u, err := h.uploads.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("Content-Length", strconv.FormatInt(u.Size, 10))
	c.Data(http.StatusOK, u.ContentType, u.Data)
}
