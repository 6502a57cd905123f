// Package pdf genera el comprobante imprimible de una reserva con Maroto v2.
//
// Layout A4:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: Reservas API  │  N° Reserva + Fecha + Estado   │
//	│  ──────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email                                 │
//	│  ──────────────────────────────────────────────────────  │
//	│  DETALLE: Cant | Producto | P.Unit | Total               │
//	│  ──────────────────────────────────────────────────────  │
//	│  TOTAL RESERVADO                                         │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ReceiptGenerator genera comprobantes de reserva en PDF.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Generate genera el comprobante de la reserva y devuelve sus bytes.
// product puede ser nil si fue eliminado después de crear la reserva.
func (g *ReceiptGenerator) Generate(
	reservation *entity.Reservation,
	client *entity.Client,
	product *entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Reserva", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(reservation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(reservation, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(reservation))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y número, fecha y estado de la reserva (der).
func headerRow(r *entity.Reservation) core.Row {
	estado := "CONFIRMADA"
	estadoColor := colorPrimary
	if r.IsCancelled() {
		estado = "ANULADA"
		estadoColor = colorRed
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Reservas API", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de reserva", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("RESERVA N° %d", r.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+r.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Top: 13, Color: estadoColor,
			}),
		),
	)
}

// clientRow: datos del cliente titular.
func clientRow(client *entity.Client) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s %s   |   %s",
				client.Name, client.LastName, client.Email,
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// detailRow: la única línea del comprobante. Si el producto fue eliminado se
// muestra el ID como referencia.
func detailRow(r *entity.Reservation, product *entity.Product) core.Row {
	name := fmt.Sprintf("Producto #%d (eliminado)", r.ProductID)
	unitPrice := "—"
	if product != nil {
		name = product.Name
		unitPrice = "$" + product.UnitPrice.StringFixed(2)
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", r.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(unitPrice, props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(
			"$"+r.TotalAmount.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1},
		)),
	)
}

func totalRow(r *entity.Reservation) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL RESERVADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+r.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}
