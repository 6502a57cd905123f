// Package xmlexport serializa el libro de reservas a XML con etree, para
// intercambio con sistemas externos.
package xmlexport

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
)

// Exporter genera el documento XML de reservas.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Reservations serializa las reservas en orden de entrada:
//
//	<reservations count="N">
//	  <reservation id="1" status="confirmed">
//	    <client_id>...</client_id>
//	    ...
//	  </reservation>
//	</reservations>
func (e *Exporter) Reservations(list []*entity.Reservation) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("reservations")
	root.CreateAttr("count", fmt.Sprintf("%d", len(list)))

	for _, r := range list {
		el := root.CreateElement("reservation")
		el.CreateAttr("id", fmt.Sprintf("%d", r.ID))
		el.CreateAttr("status", string(r.Status))
		el.CreateElement("client_id").SetText(fmt.Sprintf("%d", r.ClientID))
		el.CreateElement("product_id").SetText(fmt.Sprintf("%d", r.ProductID))
		el.CreateElement("quantity").SetText(fmt.Sprintf("%d", r.Quantity))
		el.CreateElement("total_amount").SetText(r.TotalAmount.StringFixed(2))
		el.CreateElement("created_at").SetText(r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar reservas: %w", err)
	}
	return out, nil
}
