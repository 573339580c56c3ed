// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const confirmPage = "confirm"

// Confirm asks the user a yes/no question over the current pages.
type Confirm struct {
	*tview.Modal

	pages     *tview.Pages
	onConfirm func()
	onCancel  func()
}

// NewConfirm creates a new confirmation dialog shown over pages.
func NewConfirm(pages *tview.Pages, msg string) *Confirm {
	c := &Confirm{
		Modal: tview.NewModal(),
		pages: pages,
	}
	c.SetText(msg)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetButtonBackgroundColor(tcell.ColorDodgerBlue)
	c.SetButtonTextColor(tcell.ColorWhite)
	c.AddButtons([]string{"Yes", "No"})
	c.SetDoneFunc(c.handleButton)

	return c
}

// SetOnConfirm sets the callback for when user confirms.
func (c *Confirm) SetOnConfirm(fn func()) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback for when user cancels.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// Show displays the dialog.
func (c *Confirm) Show() {
	c.pages.AddPage(confirmPage, c, false, true)
}

func (c *Confirm) handleButton(idx int, _ string) {
	c.pages.RemovePage(confirmPage)

	if idx == 0 {
		if c.onConfirm != nil {
			c.onConfirm()
		}
		return
	}
	if c.onCancel != nil {
		c.onCancel()
	}
}
