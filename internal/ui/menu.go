// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuFmt     = " [yellow::b]<%s>[white::-] %s "
	menuMaxRows = 6
)

// Menu lays out the key hints of the top component in columns.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := Menu{Table: tview.NewTable()}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return &m
}

// HydrateMenu renders the visible hints, menuMaxRows per column.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()

	visible := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && !h.IsBlank() && h.Mnemonic != "" && h.Description != "" {
			visible = append(visible, h)
		}
	}
	sort.Sort(visible)

	for start, col := 0, 0; start < len(visible); start, col = start+menuMaxRows, col+1 {
		column := visible[start:min(start+menuMaxRows, len(visible))]
		width := 0
		for _, h := range column {
			width = max(width, len(h.Mnemonic))
		}
		for row, h := range column {
			cell := tview.NewTableCell(formatHint(h, width))
			cell.SetBackgroundColor(tcell.ColorDefault)
			m.SetCell(row, col, cell)
		}
	}
}

func formatHint(h MenuHint, width int) string {
	key := strings.ToLower(h.Mnemonic)
	if pad := width - len(key); pad > 0 {
		key += strings.Repeat(" ", pad)
	}
	return fmt.Sprintf(menuFmt, key, h.Description)
}

// StackPushed notifies a component was added.
func (m *Menu) StackPushed(c Component) {
	m.HydrateMenu(c.Hints())
}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top Component) {
	if top == nil {
		m.Clear()
		return
	}
	m.HydrateMenu(top.Hints())
}

// StackTop notifies the top component.
func (m *Menu) StackTop(t Component) {
	m.HydrateMenu(t.Hints())
}
