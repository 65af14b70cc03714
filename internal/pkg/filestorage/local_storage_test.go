package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMediaType(t *testing.T) {
	assert.Equal(t, "video", DetectMediaType("clip.mp4"))
	assert.Equal(t, "video", DetectMediaType("Movie.MOV"))
	assert.Equal(t, "video", DetectMediaType("a.webm"))
	assert.Equal(t, "image", DetectMediaType("photo.jpg"))
	assert.Equal(t, "image", DetectMediaType("photo.png"))
	assert.Equal(t, "image", DetectMediaType("noextension"))
}

// uploadedFileHeader builds a real multipart.FileHeader from an in-memory upload
func uploadedFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	header := uploadedFileHeader(t, "photo.jpg", "fake image bytes")

	savedPath, err := storage.SaveFile(header)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(savedPath))

	physical := storage.GetFullPath(savedPath)
	data, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, storage.DeleteFile(savedPath))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, storage.DeleteFile(savedPath))
}

func TestSaveFileWithPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	header := uploadedFileHeader(t, "avatar.png", "avatar bytes")

	savedPath, err := storage.SaveFileWithPath(header, "avatars")
	require.NoError(t, err)
	assert.Contains(t, savedPath, "http://localhost:8080/uploads/avatars/")

	entries, err := os.ReadDir(filepath.Join(dir, "avatars"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}

func TestSaveFileNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	path, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestDeleteFileEmptyPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	assert.NoError(t, storage.DeleteFile(""))
}
