package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/app/controllers"
	"github.com/rrboots/storefront/pkg/storage"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func useTempDisk(t *testing.T) {
	t.Helper()
	storage.RegisterDisk("test", storage.NewLocal(t.TempDir(), "http://localhost:8080/public"))
	storage.SetDefault("test")
	t.Cleanup(func() { storage.SetDefault("local") })
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadStoresPNG(t *testing.T) {
	useTempDisk(t)

	rec := httptest.NewRecorder()
	controllers.NewUploadController().Store(rec, multipartUpload(t, "image", "My Boot Photo.png", pngHeader))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Path string `json:"path"`
			URL  string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	// Timestamp prefix, sanitized base, sniffed extension.
	assert.Regexp(t, regexp.MustCompile(`^uploads/\d+_my-boot-photo\.png$`), body.Data.Path)
	assert.True(t, storage.Exists(body.Data.Path))
	assert.NotEmpty(t, body.Data.URL)
}

func TestUploadRejectsWrongType(t *testing.T) {
	useTempDisk(t)

	rec := httptest.NewRecorder()
	controllers.NewUploadController().Store(rec, multipartUpload(t, "image", "notes.txt", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadExtensionFollowsContent(t *testing.T) {
	useTempDisk(t)

	// GIF bytes with a lying .png name: the sniffed type wins.
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	rec := httptest.NewRecorder()
	controllers.NewUploadController().Store(rec, multipartUpload(t, "image", "fake.png", gif))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Path string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Regexp(t, regexp.MustCompile(`\.gif$`), body.Data.Path)
}

func TestUploadRejectsOversize(t *testing.T) {
	useTempDisk(t)
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
	rec := httptest.NewRecorder()
	controllers.NewUploadController().Store(rec, multipartUpload(t, "image", "big.png", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadRequiresField(t *testing.T) {
	useTempDisk(t)

	rec := httptest.NewRecorder()
	controllers.NewUploadController().Store(rec, multipartUpload(t, "wrong", "boot.png", pngHeader))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
