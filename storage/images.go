package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const productImageDir = "productimg"

var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// ProductImagePath picks a fresh file name for an upload and returns where to write
// it on disk and the public path below /uploads.
func ProductImagePath(filename, uploadsDir string) (savePath, publicPath string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", "", fmt.Errorf("%w %q", ErrUnsupportedImage, ext)
	}
	name := uuid.NewString() + ext
	return filepath.Join(uploadsDir, productImageDir, name), path.Join("/uploads", productImageDir, name), nil
}

// SaveProductImage stores an uploaded image under uploadsDir/productimg and returns
// its public path.
func SaveProductImage(c *gin.Context, fh *multipart.FileHeader, uploadsDir string) (string, error) {
	savePath, publicPath, err := ProductImagePath(fh.Filename, uploadsDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	if err := c.SaveUploadedFile(fh, savePath); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return publicPath, nil
}
