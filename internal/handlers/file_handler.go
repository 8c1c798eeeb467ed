package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/middleware"
)

// FileHandler serves the blob store: upload, metadata and content
// retrieval for message attachments and avatars.
type FileHandler struct {
	hub *hub.Hub
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(h *hub.Hub) *FileHandler {
	return &FileHandler{hub: h}
}

// Store decodes base64 content and persists it as a blob.
func (h *FileHandler) Store(c echo.Context) error {
	ctx := c.Request().Context()
	var req StoreFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := h.hub.StoreFile(req.Name, req.Content, req.ContentType)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to store file", "file_name", req.Name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store file")
	}
	return c.JSON(http.StatusCreated, BlobResponse{ID: id})
}

// Metadata returns the stored file's name, content type and size without
// the payload.
func (h *FileHandler) Metadata(c echo.Context) error {
	meta, err := h.hub.FileMetadata(c.Param("id"))
	if err != nil {
		return h.blobError(c, err)
	}
	return c.JSON(http.StatusOK, FileMetadataResponse{
		Name:        meta.FileName,
		ContentType: meta.ContentType,
		Size:        meta.Size,
	})
}

// Content returns the file payload base64-encoded alongside its metadata.
func (h *FileHandler) Content(c echo.Context) error {
	data, meta, err := h.hub.FileContent(c.Param("id"))
	if err != nil {
		return h.blobError(c, err)
	}
	return c.JSON(http.StatusOK, FileContentResponse{
		FileMetadataResponse: FileMetadataResponse{
			Name:        meta.FileName,
			ContentType: meta.ContentType,
			Size:        meta.Size,
		},
		Content: base64.StdEncoding.EncodeToString(data),
	})
}

// Raw streams the file payload with its stored content type, for direct
// consumption by browsers.
func (h *FileHandler) Raw(c echo.Context) error {
	data, meta, err := h.hub.FileContent(c.Param("id"))
	if err != nil {
		return h.blobError(c, err)
	}
	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *FileHandler) blobError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrBlobNotFound) {
		return notFound(err)
	}
	middleware.FromContext(c.Request().Context()).Error("Blob read failed", "blob_id", c.Param("id"), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to read file")
}
