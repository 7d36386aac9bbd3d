package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/domain"
)

// MaxImageBytes tamaño máximo aceptado para una imagen subida (5 MB).
const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUpload archivo recibido desde el panel.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

func saveImage(ctx context.Context, storage ports.FileStorage, restaurantID, kind string, img ImageUpload) (string, error) {
	ext, ok := imageExtensions[img.ContentType]
	if !ok {
		return "", fmt.Errorf("%w: formato de imagen no soportado (%s)", domain.ErrInvalidInput, img.ContentType)
	}
	if img.Size <= 0 || img.Size > MaxImageBytes {
		return "", fmt.Errorf("%w: la imagen debe pesar entre 1 byte y 5 MB", domain.ErrInvalidInput)
	}
	key := fmt.Sprintf("restaurants/%s/%s-%s%s", restaurantID, kind, uuid.New().String(), ext)
	url, err := storage.Save(ctx, key, io.LimitReader(img.Body, MaxImageBytes), img.Size, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	return url, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
