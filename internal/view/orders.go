package view

import (
	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/ui"
)

// NewOrders returns the paged orders grid.
func NewOrders(app *App) (ui.Component, error) {
	f, err := app.Factory().Orders()
	if err != nil {
		return nil, err
	}
	r := &render.Order{}
	m := model.NewPageTable[dao.Order](config.OrdersView, f, r, app.Config().Acme.PageSize, app.Logger())
	v := NewPageView(app, config.OrdersView, m)
	v.SetColorerFn(r.ColorerFunc())

	return v, nil
}
