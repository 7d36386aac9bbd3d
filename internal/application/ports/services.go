package ports

import (
	"context"
	"io"
	"time"
)

// Mailer envío de correos transaccionales. Los llamadores tratan los errores como no bloqueantes.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Email mensaje saliente. HTMLBody es opcional.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// FileStorage almacenamiento de imágenes subidas (disco local o MinIO/S3).
type FileStorage interface {
	// Save guarda el contenido bajo key y devuelve la URL pública.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// MenuCache caché del menú público serializado. Un fallo de caché nunca debe romper la lectura.
type MenuCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// QREncoder genera la imagen PNG de un código QR.
type QREncoder interface {
	PNG(content string, size int) ([]byte, error)
}

// PosterGenerator genera el cartel imprimible (PDF) con el QR del menú.
type PosterGenerator interface {
	MenuPoster(restaurantName, menuURL string) ([]byte, error)
}
