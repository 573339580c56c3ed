package render

import (
	"fmt"
	"strings"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Notification renders audit notifications. The age column is computed from
// the render clock on every pass.
type Notification struct {
	Base
}

// Header returns the notification header.
func (*Notification) Header() model1.Header {
	return model1.Header{
		{Name: "TITLE", Attrs: model1.Attrs{SortField: "title"}},
		{Name: "MESSAGE", Attrs: model1.Attrs{SortField: "message"}},
		{Name: colAge, Attrs: model1.Attrs{Time: true, SortField: "time"}},
	}
}

// Render renders a notification to a row.
func (n *Notification) Render(o any, row *model1.Row) error {
	nt, ok := o.(dao.Notification)
	if !ok {
		return fmt.Errorf("expected Notification, got %T", o)
	}

	row.ID = nt.GetID()
	row.Fields = model1.Fields{
		nt.Title,
		Truncate(OneLine(nt.Message), 80),
		Freshness(n.Now(), nt.Time),
	}

	return nil
}

// ColorerFunc grays out notifications older than a day.
func (n *Notification) ColorerFunc() model1.ColorerFunc {
	return func(h model1.Header, re *model1.RowEvent) tcell.Color {
		idx := h.TimeCol()
		if idx >= 0 && idx < len(re.Row.Fields) {
			if strings.Contains(re.Row.Fields[idx], "day") {
				return model1.StaleColor
			}
		}
		return model1.DefaultColorer(h, re)
	}
}

// NotificationField resolves notification sort fields.
func NotificationField(n dao.Notification, field string) any {
	switch field {
	case "title":
		return n.Title
	case "message":
		return n.Message
	default:
		return n.Time
	}
}
