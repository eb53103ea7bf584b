package handlers

import (
	"streaming-backend/internal/services"
	"streaming-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	minioService *services.MinIOService
	logger       *logrus.Logger
}

func NewUploadHandler(minioService *services.MinIOService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		minioService: minioService,
		logger:       logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for media upload
// @Description Generate a presigned PUT URL for uploading artwork to MinIO/S3
// @Tags upload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Filename"
// @Param category query string false "Media category (posters, backdrops, avatars, thumbnails)" default(posters)
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.DetailResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Filename is required")
	}

	category := c.Query("category", "posters")

	presignedURL, publicURL, err := h.minioService.GeneratePresignedURL(filename, category)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to generate presigned URL")
	}

	return c.JSON(fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
