package handler

import (
	"mime"
	"path"
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/storage"
	"github.com/gin-gonic/gin"
)

// FileHandler serves archived exports back to the app
type FileHandler struct {
	disk storage.Disk
}

// NewFileHandler creates a new file handler
func NewFileHandler(disk storage.Disk) *FileHandler {
	return &FileHandler{disk: disk}
}

// Get streams an archived file
func (h *FileHandler) Get(c *gin.Context) {
	name := path.Clean("/" + c.Param("path"))
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == "." {
		response.BadRequest(c, "File path is required")
		return
	}

	ctx := c.Request.Context()
	if !h.disk.Exists(ctx, name) {
		response.Error(c, apperror.NewNotFoundError("File"))
		return
	}
	body, err := h.disk.Get(ctx, name)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	response.File(c, contentType, path.Base(name), body, false)
}
