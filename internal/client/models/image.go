package models

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// UploadedImage is a file picked for analysis. It lives only in memory.
type UploadedImage struct {
	Name        string
	ContentType string
	Data        []byte
	Size        int64
}

// LoadImage reads path into an UploadedImage. ContentType is declared from
// the file extension the way a browser would; it may be empty.
func LoadImage(path string) (UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UploadedImage{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	return UploadedImage{
		Name:        name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Data:        data,
		Size:        int64(len(data)),
	}, nil
}
