package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Storage представляет файловое хранилище вложений постов
type Storage struct {
	basePath    string
	maxFileSize int64
}

// NewStorage создает новое файловое хранилище
func NewStorage(basePath string, maxFileSize int64) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{basePath: basePath, maxFileSize: maxFileSize}, nil
}

// Save сохраняет загруженный файл в директорию поста и возвращает путь
func (s *Storage) Save(file *multipart.FileHeader, postID uuid.UUID) (string, error) {
	if file.Size > s.maxFileSize {
		return "", fmt.Errorf("file size exceeds maximum allowed size")
	}

	fileExt := filepath.Ext(file.Filename)
	fileName := uuid.New().String() + fileExt
	filePath := filepath.Join(s.basePath, "post_files", postID.String(), fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create file directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}

	// Создаем превью для изображений
	if strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		if err := s.createThumbnail(filePath); err != nil {
			fmt.Printf("Failed to create thumbnail: %v\n", err)
		}
	}

	return filePath, nil
}

// createThumbnail создает миниатюру изображения
func (s *Storage) createThumbnail(filePath string) error {
	img, err := imaging.Open(filePath)
	if err != nil {
		return err
	}
	thumbnail := imaging.Resize(img, 300, 300, imaging.Lanczos)
	thumbPath := thumbSuffix(filePath)
	return imaging.Save(thumbnail, thumbPath, imaging.JPEGQuality(85))
}

func thumbSuffix(filePath string) string {
	return strings.Replace(filePath, filepath.Ext(filePath), "_thumb.jpg", 1)
}

// Remove удаляет сохраненный файл и его миниатюру, если она есть.
// Отсутствие файла не считается ошибкой.
func (s *Storage) Remove(path string) {
	_ = os.Remove(path)
	_ = os.Remove(thumbSuffix(path))
}
