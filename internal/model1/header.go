package model1

// Attrs represents column attributes
type Attrs struct {
	Align     int    // tview alignment
	Wide      bool   // Hidden in narrow view
	Time      bool   // Freshness column, recomputed on every render
	Number    bool   // Numeric (right-align)
	Hide      bool   // Always hidden
	SortField string // Entity field the query engine sorts on
	Decorator DecoratorFunc
}

// HeaderColumn represents a table header column
type HeaderColumn struct {
	Name string
	Attrs
}

// Sortable returns true if the column maps to an entity field.
func (h HeaderColumn) Sortable() bool {
	return h.SortField != ""
}

// Header represents a table header (slice of columns)
type Header []HeaderColumn

// Diff returns true if the column layout changed.
func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	for i := range h {
		if h[i].Name != header[i].Name || h[i].SortField != header[i].SortField {
			return true
		}
	}
	return false
}

// IndexOf returns the index of the named column.
func (h Header) IndexOf(colName string, includeWide bool) (int, bool) {
	for i, c := range h {
		if c.Wide && !includeWide {
			continue
		}
		if c.Name == colName {
			return i, true
		}
	}
	return -1, false
}

// TimeCol returns the index of the first freshness column or -1.
func (h Header) TimeCol() int {
	for i, c := range h {
		if c.Time {
			return i
		}
	}
	return -1
}

// IsTimeCol returns true if col holds a freshness value.
func (h Header) IsTimeCol(col int) bool {
	if col < 0 || col >= len(h) {
		return false
	}
	return h[col].Time
}

// SortColumns returns the indexes of sortable columns.
func (h Header) SortColumns() []int {
	cc := make([]int, 0, len(h))
	for i, c := range h {
		if c.Sortable() {
			cc = append(cc, i)
		}
	}
	return cc
}

// ColumnNames returns the column titles, wide ones included on demand.
func (h Header) ColumnNames(wide bool) []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		if !wide && c.Wide {
			continue
		}
		cc = append(cc, c.Name)
	}
	return cc
}
