package http

import (
	"bytes"
	"io"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
)

// sniffLen bytes que inspecciona http.DetectContentType.
const sniffLen = 512

// readImage toma el campo multipart "file". Si falla ya escribió la respuesta 400.
// El tipo se deduce del contenido; la cabecera del cliente se ignora.
// El llamador debe cerrar el io.Closer devuelto.
func readImage(c *fiber.Ctx) (usecase.ImageUpload, io.Closer, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return usecase.ImageUpload{}, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	if fh.Size > usecase.MaxImageBytes {
		return usecase.ImageUpload{}, nil, c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera 5 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageUpload{}, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = f.Close()
		return usecase.ImageUpload{}, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	head = head[:n]
	return usecase.ImageUpload{
		ContentType: nethttp.DetectContentType(head),
		Size:        fh.Size,
		Body:        io.MultiReader(bytes.NewReader(head), f),
	}, f, nil
}
