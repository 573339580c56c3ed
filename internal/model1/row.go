package model1

// Fields represents the cells of a row.
type Fields []string

// Clone returns a copy of the fields.
func (f Fields) Clone() Fields {
	return append(Fields(nil), f...)
}

// Row represents a rendered entity. ID is the entity identity.
type Row struct {
	ID     string
	Fields Fields
}

// NewRow returns a row with size blank cells.
func NewRow(size int) Row {
	return Row{Fields: make(Fields, size)}
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	return Row{ID: r.ID, Fields: r.Fields.Clone()}
}
