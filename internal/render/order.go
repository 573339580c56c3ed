package render

import (
	"fmt"
	"strconv"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
)

// Order renders sales orders.
type Order struct {
	Base
}

// Header returns the order header.
func (*Order) Header() model1.Header {
	return model1.Header{
		{Name: "ID", Attrs: model1.Attrs{Number: true}},
		{Name: "DATE"},
		{Name: "STORE"},
		{Name: "PRODUCT"},
		{Name: "QTY", Attrs: model1.Attrs{Number: true}},
		{Name: "AMOUNT", Attrs: model1.Attrs{Number: true}},
	}
}

// Render renders an order to a row.
func (*Order) Render(o any, row *model1.Row) error {
	ord, ok := o.(dao.Order)
	if !ok {
		return fmt.Errorf("expected Order, got %T", o)
	}

	row.ID = ord.GetID()
	row.Fields = model1.Fields{
		strconv.FormatInt(ord.ID, 10),
		NA(ord.OperationDate),
		ord.StoreID,
		NA(ord.ProductID),
		NA(ord.Quantity),
		AsAmount(ord.Amount),
	}

	return nil
}
