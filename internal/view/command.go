// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/ui"
)

type viewFunc func(*App) (ui.Component, error)

// Command interprets command bar input.
type Command struct {
	app   *App
	views map[string]viewFunc
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{
		app: app,
		views: map[string]viewFunc{
			config.OrdersView:        NewOrders,
			config.NotificationsView: NewNotifications,
			config.TasksView:         NewTasks,
			config.ChatView:          NewChat,
			config.DocumentsView:     NewDocuments,
		},
	}
}

// Views returns the registered view names.
func (c *Command) Views() []string {
	vv := make([]string, 0, len(c.views))
	for k := range c.views {
		vv = append(vv, k)
	}
	sort.Strings(vv)

	return vv
}

// Run resolves aliases and switches to the named view.
func (c *Command) Run(cmd string) error {
	name := c.resolve(cmd)
	if name == "" {
		name = c.app.Config().Acme.DefaultView
	}

	if name == config.HelpView {
		return c.help()
	}
	if name == "q" || name == "quit" {
		c.app.Stop()
		return nil
	}

	fn, ok := c.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	v, err := fn(c.app)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := c.app.Show(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (c *Command) resolve(cmd string) string {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	ff := strings.Fields(cmd)
	if len(ff) == 0 {
		return ""
	}
	return c.app.aliases.Get(ff[0])
}

func (c *Command) help() error {
	if top := c.app.Content.Top(); top != nil && top.Name() == config.HelpView {
		return nil
	}
	h := NewHelp(c.app)
	if err := h.Init(c.app.Context()); err != nil {
		return err
	}
	c.app.Content.Push(h)
	c.app.SetFocus(h)

	return nil
}
