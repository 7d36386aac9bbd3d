// Package qr genera códigos QR en PNG.
package qr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
)

var _ ports.QREncoder = (*Encoder)(nil)

// Encoder usa corrección de errores nivel M (~15 %), suficiente para mesas impresas.
type Encoder struct{}

func NewEncoder() *Encoder { return &Encoder{} }

// PNG devuelve una imagen cuadrada de size×size píxeles.
func (e *Encoder) PNG(content string, size int) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr: escalar a %d: %w", size, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr: png: %w", err)
	}
	return buf.Bytes(), nil
}
