package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 2, 0, 0, 0, loc), NextRun(now, 2, 0))

	now = time.Date(2025, 3, 10, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 11, 2, 0, 0, 0, loc), NextRun(now, 2, 0))
}

func TestRunOnceCopiesAndPrunes(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "productimg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "productimg", "a.png"), []byte("png"), 0o644))

	old := filepath.Join(dest, "2000-01-01_00-00-00")
	require.NoError(t, os.MkdirAll(old, 0o755))
	past := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	b := &Backup{Src: src, Dest: dest, Retention: 96 * time.Hour, Logger: zerolog.Nop()}
	out, err := b.RunOnce(time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "productimg", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err), "expired backup removed")
}

func TestRunOnceMissingSource(t *testing.T) {
	b := &Backup{Src: filepath.Join(t.TempDir(), "missing"), Dest: t.TempDir(), Logger: zerolog.Nop()}
	_, err := b.RunOnce(time.Now())
	assert.Error(t, err)
}

func imageHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	fw.Write([]byte("image-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveProductImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	dir := t.TempDir()

	url, err := SaveProductImage(c, imageHeader(t, "Shea Butter.PNG"), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/productimg/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, "productimg", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	_, err = SaveProductImage(c, imageHeader(t, "script.sh"), dir)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestProductImagePathIsUnique(t *testing.T) {
	dir := t.TempDir()
	a, publicA, err := ProductImagePath("photo.JPG", dir)
	require.NoError(t, err)
	b, _, err := ProductImagePath("photo.JPG", dir)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, filepath.Join(dir, "productimg"), filepath.Dir(a))
	assert.Equal(t, "/uploads/productimg/"+filepath.Base(a), publicA)
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}
