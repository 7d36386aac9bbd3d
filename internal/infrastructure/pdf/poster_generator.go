// Package pdf genera el cartel imprimible con el QR del menú público.
//
// Layout de la página A4:
//
//	┌───────────────────────────────────────┐
//	│          NOMBRE DEL RESTAURANTE       │
//	│          "Escanea para ver el menú"   │
//	│                                       │
//	│               ┌───────┐               │
//	│               │  QR   │               │
//	│               └───────┘               │
//	│                                       │
//	│          https://…/menu/slug          │
//	└───────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
)

var _ ports.PosterGenerator = (*PosterGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 225, Green: 29, Blue: 72}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PosterGenerator implementa ports.PosterGenerator usando Maroto v2.
type PosterGenerator struct{}

func NewPosterGenerator() *PosterGenerator { return &PosterGenerator{} }

// MenuPoster genera el PDF y devuelve sus bytes.
func (g *PosterGenerator) MenuPoster(restaurantName, menuURL string) ([]byte, error) {
	if menuURL == "" {
		return nil, fmt.Errorf("pdf: menuURL vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(25).WithBottomMargin(20).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 12}).
		WithTitle("Menú "+restaurantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(20).Add(col.New(12).Add(
			text.New(restaurantName, props.Text{
				Style: fontstyle.Bold, Size: 28, Align: align.Center, Color: colorPrimary,
			}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New("Escanea el código para ver nuestro menú", props.Text{
				Size: 14, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)),
		line.NewRow(6, props.Line{Color: colorPrimary, Thickness: 0.6, SizePercent: 40}),
		row.New(8),
		row.New(130).Add(
			col.New(2),
			col.New(8).Add(code.NewQr(menuURL, props.Rect{Percent: 100, Center: true})),
			col.New(2),
		),
		row.New(10),
		row.New(10).Add(col.New(12).Add(
			text.New(menuURL, props.Text{Size: 11, Align: align.Center, Color: colorGray}),
		)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}
