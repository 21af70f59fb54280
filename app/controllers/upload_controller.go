package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rrboots/storefront/config"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/storage"
)

// allowedImageTypes maps accepted sniffed MIME types to the extension the
// stored file gets. The client-supplied extension is never trusted.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadController handles admin product image uploads.
type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Store accepts a multipart upload under the "image" field, checks the
// sniffed content type and size cap, and writes it to the configured disk
// under uploads/ with a timestamp-prefixed name.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	maxBytes := config.UploadMaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+4096)

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		response.Error(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image exceeds the %d MB limit", maxBytes>>20))
		return
	}

	// Sniff the real content type from the first 512 bytes.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		response.Error(w, http.StatusInternalServerError, "could not read upload")
		return
	}
	contentType := http.DetectContentType(head[:n])

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		response.Error(w, http.StatusUnsupportedMediaType,
			"only jpeg, png, webp and gif images are accepted")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not read upload")
		return
	}

	name := fmt.Sprintf("%d_%s%s",
		time.Now().UnixMilli(), sanitizeBaseName(header.Filename), ext)
	path := "uploads/" + name

	if err := storage.PutStream(path, file); err != nil {
		logger.Error("upload: store failed", "path", path, "error", err)
		response.Error(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	response.Created(w, map[string]interface{}{
		"path": path,
		"url":  storage.URL(path),
	})
}

// sanitizeBaseName reduces the original filename to a safe slug-ish base,
// dropping the extension and anything outside [a-z0-9-_].
func sanitizeBaseName(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.ToLower(base)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}
