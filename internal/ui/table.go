// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/model1"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	titleFmt       = " [aqua::b]%s[white::-][[fuchsia::b]%s[white::-]] "
	titleFilterFmt = " [aqua::b]%s[white::-][[fuchsia::b]%s[white::-]] [gray::-]/%s "
	noDataMsg      = "No data"
	loadingMsg     = "Loading..."
)

// SortFunc is called when the user picks a sort field.
type SortFunc func(field string, desc bool)

// Table renders a tabular model.
type Table struct {
	*tview.Table

	name     string
	actions  *KeyActions
	model    model.Tabular
	header   model1.Header
	data     *model1.TableData
	colorer  model1.ColorerFunc
	sortCol  int
	sortDesc bool
	sortFn   SortFunc
	filter   string
	title    string
	queueFn  func(func())
	mx       sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(name string) *Table {
	return &Table{
		Table:   tview.NewTable(),
		name:    name,
		actions: NewKeyActions(),
		colorer: model1.DefaultColorer,
		sortCol: -1,
		queueFn: func(f func()) { f() },
	}
}

// Init initializes the table component.
func (t *Table) Init(context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorDodgerBlue)
	t.SetTitle(fmt.Sprintf(titleFmt, t.name, "0"))
	t.showMessage(loadingMsg, tcell.ColorGray)
	t.SetInputCapture(t.keyboard)
	t.bindKeys()

	return nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// SetQueueFn sets how updates reach the ui thread.
func (t *Table) SetQueueFn(fn func(func())) {
	t.queueFn = fn
}

// SetColorerFn sets the row colorer.
func (t *Table) SetColorerFn(fn model1.ColorerFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.colorer = fn
}

// SetSortFn sets the sort callback.
func (t *Table) SetSortFn(fn SortFunc) {
	t.sortFn = fn
}

// SetModel sets the table data model.
func (t *Table) SetModel(m model.Tabular) {
	t.mx.Lock()
	old := t.model
	t.model = m
	t.mx.Unlock()

	if old != nil {
		old.RemoveListener(t)
	}
	if m != nil {
		m.AddListener(t)
	}
}

// GetModel returns the current table model.
func (t *Table) GetModel() model.Tabular {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.model
}

// SortColumn returns the sort column name and direction.
func (t *Table) SortColumn() (string, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()

	if t.sortCol < 0 || t.sortCol >= len(t.header) {
		return "", false
	}
	return t.header[t.sortCol].Name, t.sortDesc
}

// SetSortColumn selects the sort column by name.
func (t *Table) SetSortColumn(name string, desc bool) bool {
	t.mx.Lock()
	header := t.header
	if len(header) == 0 && t.model != nil {
		header = t.model.Peek().Header()
	}
	idx, ok := header.IndexOf(name, true)
	if !ok || !header[idx].Sortable() {
		t.mx.Unlock()
		return false
	}
	t.header, t.sortCol, t.sortDesc = header, idx, desc
	field := header[idx].SortField
	t.mx.Unlock()

	if t.sortFn != nil {
		t.sortFn(field, desc)
	}
	return true
}

// SetFilterText records the filter shown in the title.
func (t *Table) SetFilterText(s string) {
	t.mx.Lock()
	t.filter = s
	data := t.data
	t.mx.Unlock()

	t.queueFn(func() { t.updateTitle(data) })
}

// GetSelectedItem returns the id of the selected row.
func (t *Table) GetSelectedItem() string {
	row, _ := t.GetSelection()
	if row <= 0 {
		return ""
	}
	cell := t.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	if id, ok := cell.GetReference().(string); ok {
		return id
	}
	return ""
}

func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	count := t.GetRowCount()

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < count-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				t.Select(row-1, col)
			}
			return nil
		case 'g':
			if count > 1 {
				t.Select(1, col)
			}
			return nil
		case 'G':
			if count > 1 {
				t.Select(count-1, col)
			}
			return nil
		}
	}

	return t.actions.Handle(evt)
}

func (t *Table) bindKeys() {
	t.actions.Bulk(KeyMap{
		KeyS:      NewKeyAction("Sort", t.sortCmd, true),
		KeyShiftI: NewKeyAction("Invert Sort", t.invertCmd, true),
	})
}

// sortCmd cycles through the sortable columns.
func (t *Table) sortCmd(*tcell.EventKey) *tcell.EventKey {
	t.mx.RLock()
	cols := t.header.SortColumns()
	current, desc := t.sortCol, t.sortDesc
	t.mx.RUnlock()

	if len(cols) == 0 {
		return nil
	}
	next := cols[0]
	for i, c := range cols {
		if c == current {
			next = cols[(i+1)%len(cols)]
			break
		}
	}
	t.applySort(next, desc)

	return nil
}

func (t *Table) invertCmd(*tcell.EventKey) *tcell.EventKey {
	t.mx.RLock()
	current, desc := t.sortCol, t.sortDesc
	t.mx.RUnlock()

	if current < 0 {
		return nil
	}
	t.applySort(current, !desc)

	return nil
}

func (t *Table) applySort(col int, desc bool) {
	t.mx.Lock()
	if col < 0 || col >= len(t.header) {
		t.mx.Unlock()
		return
	}
	t.sortCol, t.sortDesc = col, desc
	field := t.header[col].SortField
	t.mx.Unlock()

	if t.sortFn != nil {
		t.sortFn(field, desc)
	}
}

func (t *Table) showMessage(msg string, color tcell.Color) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	cell.SetExpansion(1)
	t.SetCell(0, 0, cell)
}

// UpdateUI renders data.
func (t *Table) UpdateUI(data *model1.TableData) {
	t.mx.Lock()
	t.data = data
	if h := data.Header(); h.Diff(t.header) {
		t.header, t.sortCol = h, -1
	}
	colorer := t.colorer
	t.mx.Unlock()

	selected := t.GetSelectedItem()
	t.Clear()
	t.SetBorderColor(tcell.ColorDodgerBlue)
	t.buildHeader(data.Header())

	row := 1
	data.RowEvents().Range(func(_ int, re model1.RowEvent) bool {
		t.buildRow(row, re, data.Header(), colorer)
		if re.Row.ID == selected {
			t.Select(row, 0)
		}
		row++
		return true
	})
	if selected == "" && t.GetRowCount() > 1 {
		t.Select(1, 0)
	}
	t.updateTitle(data)
}

func (t *Table) buildHeader(header model1.Header) {
	t.mx.RLock()
	sortCol, desc := t.sortCol, t.sortDesc
	t.mx.RUnlock()

	for col, h := range header {
		if h.Hide {
			continue
		}
		name := h.Name
		if col == sortCol {
			if desc {
				name += "↓"
			} else {
				name += "↑"
			}
		}
		cell := tview.NewTableCell(name)
		cell.SetTextColor(tcell.ColorWhite)
		cell.SetAttributes(tcell.AttrBold)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(columnAlign(h))
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		t.SetCell(0, col, cell)
	}
}

func (t *Table) buildRow(r int, re model1.RowEvent, header model1.Header, colorer model1.ColorerFunc) {
	color := tcell.Color(colorer(header, &re))
	for col, field := range re.Row.Fields {
		if col >= len(header) {
			break
		}
		h := header[col]
		if h.Hide {
			continue
		}
		if h.Decorator != nil {
			field = h.Decorator(field)
		}
		if col < len(re.Deltas) && re.Deltas[col] != "" {
			field += "*"
		}
		cell := tview.NewTableCell(field)
		cell.SetTextColor(color)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(columnAlign(h))
		cell.SetExpansion(1)
		if col == 0 {
			cell.SetReference(re.Row.ID)
		}
		t.SetCell(r, col, cell)
	}
}

func (t *Table) updateTitle(data *model1.TableData) {
	t.mx.RLock()
	filter := t.filter
	t.mx.RUnlock()

	name := t.name
	count := "0"
	if data != nil {
		if title := data.Title(); title != "" {
			name = title
		}
		count = fmt.Sprintf("%d", data.RowCount())
		if total, ok := data.Total(); ok {
			count = fmt.Sprintf("%d/%d", data.RowCount(), total)
		}
	}

	title := fmt.Sprintf(titleFmt, name, count)
	if strings.TrimSpace(filter) != "" {
		title = fmt.Sprintf(titleFilterFmt, name, count, filter)
	}
	t.mx.Lock()
	t.title = title
	t.mx.Unlock()
	t.SetTitle(title)
}

// Title returns the current table title.
func (t *Table) Title() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.title
}

// TableDataChanged implements model.TableListener.
func (t *Table) TableDataChanged(data *model1.TableData) {
	t.queueFn(func() { t.UpdateUI(data) })
}

// TableNoData implements model.TableListener.
func (t *Table) TableNoData(data *model1.TableData) {
	t.queueFn(func() {
		t.mx.Lock()
		t.data = data
		t.mx.Unlock()

		t.showMessage(noDataMsg, tcell.ColorGray)
		t.updateTitle(data)
	})
}

// TableLoadFailed implements model.TableListener. Rendered rows are kept.
func (t *Table) TableLoadFailed(err error) {
	t.queueFn(func() {
		t.SetBorderColor(tcell.ColorRed)
		t.mx.RLock()
		data := t.data
		t.mx.RUnlock()
		if data == nil {
			t.showMessage(err.Error(), tcell.ColorRed)
		}
	})
}

func columnAlign(h model1.HeaderColumn) int {
	if h.Number && h.Align == tview.AlignLeft {
		return tview.AlignRight
	}
	return h.Align
}
