package render

import (
	"fmt"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Document renders repository documents.
type Document struct {
	Base
}

// Header returns the document header.
func (*Document) Header() model1.Header {
	return model1.Header{
		{Name: colName},
		{Name: "KEY", Attrs: model1.Attrs{Wide: true}},
		{Name: "SIZE", Attrs: model1.Attrs{Number: true}},
		{Name: "STORAGE-CLASS"},
		{Name: colAge, Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a document to a row.
func (d *Document) Render(o any, row *model1.Row) error {
	doc, ok := o.(dao.Document)
	if !ok {
		return fmt.Errorf("expected Document, got %T", o)
	}

	row.ID = doc.GetID()
	row.Fields = model1.Fields{
		doc.Name(),
		doc.Key,
		FormatSize(doc.Size),
		NA(doc.StorageClass),
		Freshness(d.Now(), doc.LastModified),
	}

	return nil
}

// ColorerFunc marks archived documents.
func (*Document) ColorerFunc() model1.ColorerFunc {
	return func(h model1.Header, re *model1.RowEvent) tcell.Color {
		idx, ok := h.IndexOf("STORAGE-CLASS", true)
		if !ok || idx >= len(re.Row.Fields) {
			return model1.StdColor
		}

		switch re.Row.Fields[idx] {
		case "GLACIER", "DEEP_ARCHIVE", "GLACIER_IR":
			return model1.PendingColor
		default:
			return model1.DefaultColorer(h, re)
		}
	}
}
