package model1

// RowEvent tracks a row change between two loads.
type RowEvent struct {
	Kind   ResEvent
	Row    Row
	Deltas DeltaRow
}

// NewRowEvent returns an event of the given kind.
func NewRowEvent(kind ResEvent, row Row) RowEvent {
	return RowEvent{Kind: kind, Row: row}
}

// NewRowEventWithDeltas returns an update event. Blank deltas mean only
// hidden fields moved, so the row reads as unchanged.
func NewRowEventWithDeltas(row Row, delta DeltaRow) RowEvent {
	if delta.IsBlank() {
		return RowEvent{Kind: EventUnchanged, Row: row}
	}
	return RowEvent{Kind: EventUpdate, Row: row, Deltas: delta}
}

// Clone returns a deep copy of the event.
func (r RowEvent) Clone() RowEvent {
	return RowEvent{
		Kind:   r.Kind,
		Row:    r.Row.Clone(),
		Deltas: r.Deltas.Clone(),
	}
}

// RowEvents holds row events in display order, indexed by row id.
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

// NewRowEvents returns an empty collection sized for size rows.
func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

// Add appends an event.
func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	r.index[re.Row.ID] = len(r.events) - 1
}

// Get returns the event for row id.
func (r *RowEvents) Get(id string) (RowEvent, bool) {
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.events[i], true
}

// Empty returns true if there are no events.
func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

// Count returns the number of events.
func (r *RowEvents) Count() int {
	return len(r.events)
}

// CountKind returns the number of events matching the kind mask.
func (r *RowEvents) CountKind(kind ResEvent) int {
	var n int
	for _, e := range r.events {
		if e.Kind&kind != 0 {
			n++
		}
	}
	return n
}

// Range walks the events in order until f returns false.
func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}

// Clone returns a deep copy.
func (r *RowEvents) Clone() *RowEvents {
	out := NewRowEvents(len(r.events))
	for _, e := range r.events {
		out.Add(e.Clone())
	}
	return out
}
