package model1

// DeltaRow holds the previous value of every cell that changed between two
// loads. Unchanged cells are blank.
type DeltaRow []string

// NewDeltaRow compares two renditions of the same entity. Freshness columns
// change on every tick and never count as deltas.
func NewDeltaRow(o, n Row, h Header) DeltaRow {
	deltas := make(DeltaRow, len(n.Fields))
	for i := range min(len(o.Fields), len(n.Fields)) {
		if h.IsTimeCol(i) {
			continue
		}
		if old := o.Fields[i]; old != "" && old != n.Fields[i] {
			deltas[i] = old
		}
	}
	return deltas
}

// IsBlank returns true if no cell changed.
func (d DeltaRow) IsBlank() bool {
	for _, v := range d {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy of the deltas.
func (d DeltaRow) Clone() DeltaRow {
	if d == nil {
		return nil
	}
	return append(DeltaRow(nil), d...)
}
