package view

import (
	"strings"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/render"
	"github.com/acme/acmeui/internal/ui"
)

// NewNotifications returns the notifications list.
func NewNotifications(app *App) (ui.Component, error) {
	l, err := app.Factory().Notifications()
	if err != nil {
		return nil, err
	}
	r := &render.Notification{}
	m := model.NewTableData[dao.Notification](
		config.NotificationsView,
		l,
		r,
		render.NotificationField,
		app.Config().Acme.GetRefreshRate(),
		app.Logger(),
	)
	v := NewListView(app, config.NotificationsView, m, MatchNotification)
	v.SetColorerFn(r.ColorerFunc())

	return v, nil
}

// MatchNotification returns true if a lowercased needle appears in the title or message.
func MatchNotification(n dao.Notification, text string) bool {
	return strings.Contains(strings.ToLower(n.Title), text) ||
		strings.Contains(strings.ToLower(n.Message), text)
}
