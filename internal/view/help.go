// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package view

import (
	"context"
	"fmt"
	"sort"

	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const helpColWidth = 3

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// Help lists the views, the general bindings and the bindings of the current view.
type Help struct {
	*tview.Table

	app *App
}

// NewHelp returns a new help view.
func NewHelp(app *App) *Help {
	return &Help{
		Table: tview.NewTable(),
		app:   app,
	}
}

// Name returns the component name.
func (h *Help) Name() string {
	return config.HelpView
}

// Init initializes the view.
func (h *Help) Init(context.Context) error {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	cols, headers := h.sections()
	h.build(cols, headers)

	return nil
}

// Start is a no-op.
func (*Help) Start() {}

// Stop is a no-op.
func (*Help) Stop() {}

// Hints returns the menu hints.
func (h *Help) Hints() ui.MenuHints {
	return ui.MenuHints{{Mnemonic: "esc", Description: "Back", Visible: true}}
}

func (h *Help) sections() ([][]HelpBind, []string) {
	views := make([]HelpBind, 0, 5)
	for _, v := range h.app.command.Views() {
		views = append(views, HelpBind{Key: ":" + v, Desc: v})
	}
	for _, name := range h.app.hotkeys.Names() {
		hk := h.app.hotkeys.Get(name)
		if hk == nil {
			continue
		}
		views = append(views, HelpBind{Key: "<" + hk.ShortCut + ">", Desc: hk.Description})
	}

	general := []HelpBind{
		{"<:>", "Command"},
		{"</>", "Filter"},
		{"<?>", "Help"},
		{"<esc>", "Back"},
		{"<ctrl-r>", "Refresh"},
		{"<q>", "Quit"},
	}

	nav := []HelpBind{
		{"<j>", "Down"},
		{"<k>", "Up"},
		{"<g>", "Top"},
		{"<G>", "Bottom"},
	}

	var current []HelpBind
	if top := h.app.Content.Top(); top != nil && top.Name() != config.HelpView {
		hh := top.Hints()
		sort.Sort(hh)
		for _, hint := range hh {
			if hint.Visible {
				current = append(current, HelpBind{Key: fmt.Sprintf("<%s>", hint.Mnemonic), Desc: hint.Description})
			}
		}
	}

	return [][]HelpBind{views, general, nav, current}, []string{"VIEWS", "GENERAL", "NAVIGATION", "VIEW"}
}

func (h *Help) build(columns [][]HelpBind, headers []string) {
	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	for colIdx, col := range columns {
		baseCol := colIdx * helpColWidth
		h.SetCell(0, baseCol, tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for rowIdx, bind := range col {
			h.SetCell(rowIdx+1, baseCol, tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(rowIdx+1, baseCol+1, tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				h.SetCell(row, baseCol+2, tview.NewTableCell("").SetSelectable(false).SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
