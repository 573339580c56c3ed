package model1

import "sync"

// TableData tracks rendered rows for tabular display.
type TableData struct {
	header    Header
	rowEvents *RowEvents
	title     string
	total     int64
	hasTotal  bool
	mx        sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData() *TableData {
	return &TableData{
		rowEvents: NewRowEvents(10),
	}
}

// Header returns the table header.
func (t *TableData) Header() Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.header
}

// SetHeader sets the table header.
func (t *TableData) SetHeader(h Header) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.header = h
}

// RowEvents returns the row events.
func (t *TableData) RowEvents() *RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents
}

// SetRowEvents replaces the row events.
func (t *TableData) SetRowEvents(re *RowEvents) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.rowEvents = re
}

// Title returns the table title.
func (t *TableData) Title() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.title
}

// SetTitle sets the table title.
func (t *TableData) SetTitle(s string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.title = s
}

// Total returns the remote record count, if known.
func (t *TableData) Total() (int64, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.total, t.hasTotal
}

// SetTotal records the remote record count.
func (t *TableData) SetTotal(n int64) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.total, t.hasTotal = n, true
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Empty()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Count()
}

// Clone returns a shallow copy of the table data.
func (t *TableData) Clone() *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return &TableData{
		header:    t.header,
		rowEvents: t.rowEvents,
		title:     t.title,
		total:     t.total,
		hasTotal:  t.hasTotal,
	}
}
