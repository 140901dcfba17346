package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints defines validation rules for image uploads
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidateFile validates a file upload against a constraint set. The content
// type is detected from the file's leading bytes, not the client-supplied
// header, so a renamed file cannot sneak through.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) error {
	// Check file size first (before reading content)
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Read first 512 bytes for magic number detection
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}

	return nil
}
