package v1

import (
	"net/http"

	"github.com/cityverse/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initImagesRoutes(api *gin.RouterGroup) {
	images := h.authenticated(api.Group("/images"))
	images.POST("", h.uploadImage)
}

type uploadImageResponse struct {
	URL string `json:"url"`
}

// @Summary Upload Image
// @Security UserAuth
// @Tags Images
// @Description Forwards the file to the image host and returns the hosted URL for use as an image candidate
// @Accept  mpfd
// @Produce  json
// @Param file formData file true "image file"
// @Success 201 {object} uploadImageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /images [post]
func (h *Handler) uploadImage(c *gin.Context) {
	if !h.uploaderClient.Enabled() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, &ErrorStruct{
			ErrorCode:    UploadNotConfiguredCode,
			ErrorMessage: UploadNotConfiguredMessage,
		})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    ValidationErrorCode,
			ErrorMessage: "file is required",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.Error("open uploaded file failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    ValidationErrorCode,
			ErrorMessage: "file cannot be read",
		})
		return
	}
	defer file.Close()

	url, err := h.uploaderClient.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		logger.Error("image upload failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, &ErrorStruct{
			ErrorCode:    UploadFailedCode,
			ErrorMessage: UploadFailedMessage,
		})
		return
	}

	c.JSON(http.StatusCreated, uploadImageResponse{URL: url})
}
