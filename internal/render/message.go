package render

import (
	"fmt"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
)

// Message renders chat lines.
type Message struct {
	Base
}

// Header returns the message header.
func (*Message) Header() model1.Header {
	return model1.Header{
		{Name: "USER"},
		{Name: "TEXT"},
		{Name: colAge, Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a message to a row.
func (m *Message) Render(o any, row *model1.Row) error {
	msg, ok := o.(dao.Message)
	if !ok {
		return fmt.Errorf("expected Message, got %T", o)
	}

	row.ID = msg.GetID()
	row.Fields = model1.Fields{
		msg.UserName,
		OneLine(msg.Text),
		Freshness(m.Now(), msg.Time),
	}

	return nil
}

// Line formats a message for the chat window.
func (m *Message) Line(msg dao.Message) string {
	return fmt.Sprintf("[%s] %s: %s", Freshness(m.Now(), msg.Time), msg.UserName, OneLine(msg.Text))
}
