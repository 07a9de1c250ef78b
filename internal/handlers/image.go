package handlers

import (
	"net/http"
	"strings"

	"forskull/internal/services"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

type ImageHandler struct {
	imgurClientID string
}

func NewImageHandler(imgurClientID string) *ImageHandler {
	return &ImageHandler{imgurClientID: imgurClientID}
}

// Upload accepts a multipart image and returns its public URL.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не найден в запросе"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Файл слишком большой, максимум 10 МБ"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Разрешены только изображения"})
		return
	}

	result, err := services.UploadImage(h.imgurClientID, file, header)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
