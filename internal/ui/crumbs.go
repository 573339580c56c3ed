// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	crumbFmt       = "[gray::-] <%s> [-:-:-] "
	activeCrumbFmt = "[black:orange:b] <%s> [-:-:-] "
)

// Crumbs shows the component stack, the active view last.
type Crumbs struct {
	*tview.TextView

	pages *Pages
}

// NewCrumbs returns a new breadcrumb view tracking pages.
func NewCrumbs(pages *Pages) *Crumbs {
	c := Crumbs{
		TextView: tview.NewTextView(),
		pages:    pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

// StackPushed indicates a new item was added.
func (c *Crumbs) StackPushed(Component) { c.refresh() }

// StackPopped indicates an item was deleted.
func (c *Crumbs) StackPopped(_, _ Component) { c.refresh() }

// StackTop indicates the top of the stack.
func (c *Crumbs) StackTop(Component) { c.refresh() }

func (c *Crumbs) refresh() {
	c.SetText(renderCrumbs(c.pages.Flatten()))
}

func renderCrumbs(names []string) string {
	var b strings.Builder
	for i, n := range names {
		f := crumbFmt
		if i == len(names)-1 {
			f = activeCrumbFmt
		}
		fmt.Fprintf(&b, f, strings.ToLower(strings.Join(strings.Fields(n), "")))
	}
	return b.String()
}
