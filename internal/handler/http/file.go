package http

import (
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 表单字段名
const uploadFormField = "file"

// FileHandler 处理 multipart 文件上传
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler 创建 FileHandler 实例
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// readUpload 从 multipart 表单中打开上传文件，失败时写出 400
func readUpload(c *gin.Context) (service.UploadInput, func(), bool) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		logrus.WithError(err).Warn("Handler.Upload: missing file field")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "field": uploadFormField})
		return service.UploadInput{}, nil, false
	}
	f, err := header.Open()
	if err != nil {
		logrus.WithError(err).Error("Handler.Upload: failed to open uploaded file")
		ErrorResponse(c, http.StatusBadRequest, "Could not read uploaded file")
		return service.UploadInput{}, nil, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	in := service.UploadInput{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        f,
	}
	return in, func() { _ = f.Close() }, true
}

// UploadToChannel POST .../channels/:channelId/files
func (h *FileHandler) UploadToChannel(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	in, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	file, err := h.fileService.Upload(c.Request.Context(), userID, c.Param("workspaceId"), c.Param("channelId"), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, file)
}

// ListChannelFiles GET .../channels/:channelId/files
func (h *FileHandler) ListChannelFiles(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	files, err := h.fileService.List(c.Request.Context(), userID, c.Param("workspaceId"), c.Param("channelId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, files)
}

// Upload POST /api/upload，返回对象的公开 URL
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	in, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	url, err := h.fileService.UploadUnscoped(c.Request.Context(), userID, in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{"url": url})
}
