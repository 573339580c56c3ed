package model

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/acme/acmeui/internal/model1"
)

// Filter selects items. Two filters are the same when their keys match.
type Filter[T any] struct {
	Key   string
	Match func(T) bool
}

// NewFilter returns a filter identified by key.
func NewFilter[T any](key string, match func(T) bool) *Filter[T] {
	return &Filter[T]{Key: key, Match: match}
}

func (f *Filter[T]) key() string {
	if f == nil {
		return ""
	}
	return f.Key
}

func (f *Filter[T]) accept(item T) bool {
	return f == nil || f.Match == nil || f.Match(item)
}

// SortClause orders by one field. Earlier clauses take precedence.
type SortClause struct {
	Field string
	Desc  bool
}

// Range selects Length items starting at Offset.
type Range struct {
	Offset int
	Length int
}

// FieldFunc extracts a sortable field value from an item.
type FieldFunc[T any] func(item T, field string) any

// FilterListener represents a filter change listener.
type FilterListener interface {
	// FilterChanged notifies the active filter moved to key.
	FilterChanged(key string)
}

// InMemory answers filtered, sorted range queries over a resident dataset.
// Readers see the snapshot current when the query started.
type InMemory[T any] struct {
	data   atomic.Pointer[[]T]
	field  FieldFunc[T]
	active string
	seen   bool

	listeners []FilterListener
	mx        sync.Mutex
}

// NewInMemory returns an empty engine. field resolves sort clause fields.
func NewInMemory[T any](field FieldFunc[T]) *InMemory[T] {
	m := InMemory[T]{field: field}
	empty := []T{}
	m.data.Store(&empty)

	return &m
}

// Load replaces the dataset.
func (m *InMemory[T]) Load(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)
	m.data.Store(&cp)
}

// Len returns the unfiltered dataset size.
func (m *InMemory[T]) Len() int {
	return len(*m.data.Load())
}

// Fetch returns the filtered, sorted items within rng. Out of range requests
// yield an empty slice.
func (m *InMemory[T]) Fetch(f *Filter[T], clauses []SortClause, rng Range) []T {
	m.observe(f)

	items := m.filter(*m.data.Load(), f)
	if len(clauses) > 0 && m.field != nil {
		sort.SliceStable(items, func(i, j int) bool {
			return m.less(items[i], items[j], clauses)
		})
	}

	off := max(rng.Offset, 0)
	if off >= len(items) || rng.Length <= 0 {
		return []T{}
	}
	end := min(off+rng.Length, len(items))

	return items[off:end]
}

// Count returns the number of items matching f.
func (m *InMemory[T]) Count(f *Filter[T]) int {
	m.observe(f)

	var n int
	for _, it := range *m.data.Load() {
		if f.accept(it) {
			n++
		}
	}

	return n
}

// AddFilterListener registers a filter listener.
func (m *InMemory[T]) AddFilterListener(l FilterListener) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.listeners = append(m.listeners, l)
}

// RemoveFilterListener unregisters a filter listener.
func (m *InMemory[T]) RemoveFilterListener(l FilterListener) {
	m.mx.Lock()
	defer m.mx.Unlock()

	for i, lis := range m.listeners {
		if lis == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// ActiveFilter returns the key of the last filter queried.
func (m *InMemory[T]) ActiveFilter() string {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.active
}

func (m *InMemory[T]) snapshot() []T {
	return *m.data.Load()
}

func (m *InMemory[T]) observe(f *Filter[T]) {
	key := f.key()

	m.mx.Lock()
	if !m.seen {
		m.seen, m.active = true, key
		m.mx.Unlock()
		return
	}
	if m.active == key {
		m.mx.Unlock()
		return
	}
	m.active = key
	ll := make([]FilterListener, len(m.listeners))
	copy(ll, m.listeners)
	m.mx.Unlock()

	for _, l := range ll {
		l.FilterChanged(key)
	}
}

func (m *InMemory[T]) filter(src []T, f *Filter[T]) []T {
	out := make([]T, 0, len(src))
	for _, it := range src {
		if f.accept(it) {
			out = append(out, it)
		}
	}

	return out
}

func (m *InMemory[T]) less(a, b T, clauses []SortClause) bool {
	for _, c := range clauses {
		v := model1.Compare(m.field(a, c.Field), m.field(b, c.Field))
		if v == 0 {
			continue
		}
		if c.Desc {
			return v > 0
		}
		return v < 0
	}

	return false
}
