package model

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
	"github.com/wI2L/jsondiff"
)

// DefaultRefreshRate is used when no refresh rate is configured.
const DefaultRefreshRate = 5 * time.Second

// TableData lists a bounded collection, keeps it resident in an in-memory
// engine and renders the filtered, sorted view as table rows.
type TableData[T dao.Entity] struct {
	tableListeners

	title       string
	lister      dao.Lister[T]
	engine      *InMemory[T]
	renderer    model1.Renderer
	filter      *Filter[T]
	sort        []SortClause
	prev        map[string]T
	prevRows    map[string]model1.Row
	rendered    map[string]model1.Row
	loaded      bool
	hasPrev     bool
	data        *model1.TableData
	refreshRate time.Duration
	cancelFn    context.CancelFunc
	log         *slog.Logger
	mx          sync.RWMutex

	// rmx orders reloads and renders so the last published rows always match
	// the latest filter and sort.
	rmx sync.Mutex
}

// NewTableData creates a new table data model.
func NewTableData[T dao.Entity](title string, l dao.Lister[T], r model1.Renderer, field FieldFunc[T], refreshRate time.Duration, log *slog.Logger) *TableData[T] {
	if log == nil {
		log = slog.Default()
	}
	data := model1.NewTableData()
	data.SetTitle(title)
	data.SetHeader(r.Header())

	return &TableData[T]{
		title:       title,
		lister:      l,
		engine:      NewInMemory(field),
		renderer:    r,
		prev:        make(map[string]T),
		prevRows:    make(map[string]model1.Row),
		rendered:    make(map[string]model1.Row),
		data:        data,
		refreshRate: refreshRate,
		log:         log,
	}
}

// Engine returns the in-memory query engine backing the table.
func (t *TableData[T]) Engine() *InMemory[T] {
	return t.engine
}

// Header returns the table header.
func (t *TableData[T]) Header() model1.Header {
	return t.renderer.Header()
}

// Peek returns a clone of the current table data.
func (t *TableData[T]) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Clone()
}

// RowCount returns the number of rows.
func (t *TableData[T]) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowCount()
}

// Filter returns the active filter key.
func (t *TableData[T]) Filter() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.filter.key()
}

// SetFilter changes the filter and re-renders the rows.
func (t *TableData[T]) SetFilter(f *Filter[T]) {
	t.mx.Lock()
	t.filter = f
	t.mx.Unlock()

	t.Reconcile()
}

// Sort returns the active sort clauses.
func (t *TableData[T]) Sort() []SortClause {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return append([]SortClause(nil), t.sort...)
}

// SetSort changes the sort clauses and re-renders the rows.
func (t *TableData[T]) SetSort(cc ...SortClause) {
	t.mx.Lock()
	t.sort = cc
	t.mx.Unlock()

	t.Reconcile()
}

// Watch starts watching/refreshing data periodically.
func (t *TableData[T]) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	t.mx.Unlock()

	if err := t.Refresh(watchCtx); err != nil {
		go t.watchLoop(watchCtx)
		return err
	}
	go t.watchLoop(watchCtx)

	return nil
}

// Stop stops the watch loop.
func (t *TableData[T]) Stop() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
}

func (t *TableData[T]) watchLoop(ctx context.Context) {
	rate := t.refreshRate
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = t.Refresh(ctx)
		}
	}
}

// Refresh lists the collection, loads it into the engine and re-renders.
// On failure the previous rows are kept.
func (t *TableData[T]) Refresh(ctx context.Context) error {
	items, err := t.lister.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fmt.Errorf("list %s: %w", t.title, err)
		t.log.Error("table refresh failed", "table", t.title, "error", err)
		t.notifyLoadFailed(err)
		return err
	}

	t.rmx.Lock()
	defer t.rmx.Unlock()

	t.mx.Lock()
	if t.loaded {
		prev := make(map[string]T, t.engine.Len())
		for _, it := range t.engine.snapshot() {
			prev[it.GetID()] = it
		}
		t.prev, t.prevRows, t.hasPrev = prev, t.rendered, true
	}
	t.loaded = true
	t.engine.Load(items)
	t.mx.Unlock()

	t.reconcile()

	return nil
}

// Reconcile re-renders the resident dataset. Relative time columns pick up
// the current clock. Listeners are notified in call order and must not call
// back into the table.
func (t *TableData[T]) Reconcile() {
	t.rmx.Lock()
	defer t.rmx.Unlock()

	t.reconcile()
}

func (t *TableData[T]) reconcile() {
	t.mx.RLock()
	filter, clauses := t.filter, t.sort
	t.mx.RUnlock()

	items := t.engine.Fetch(filter, clauses, Range{Length: math.MaxInt})
	header := t.renderer.Header()

	rows := model1.NewRowEvents(len(items))
	rendered := make(map[string]model1.Row, len(items))
	t.mx.RLock()
	for _, it := range items {
		row := model1.NewRow(len(header))
		if err := t.renderer.Render(it, &row); err != nil {
			t.log.Warn("render failed", "table", t.title, "id", it.GetID(), "error", err)
			continue
		}
		rendered[row.ID] = row
		rows.Add(t.rowEvent(it, row, header))
	}
	t.mx.RUnlock()

	t.log.Debug("table reconciled",
		"table", t.title,
		"rows", rows.Count(),
		"added", rows.CountKind(model1.EventAdd),
		"updated", rows.CountKind(model1.EventUpdate),
	)

	data := model1.NewTableData()
	data.SetTitle(t.title)
	data.SetHeader(header)
	data.SetRowEvents(rows)
	data.SetTotal(int64(t.engine.Len()))

	t.mx.Lock()
	t.rendered = rendered
	t.data = data
	t.mx.Unlock()

	if rows.Empty() {
		t.notifyNoData(data.Clone())
		return
	}
	t.notifyDataChanged(data.Clone())
}

func (t *TableData[T]) rowEvent(it T, row model1.Row, header model1.Header) model1.RowEvent {
	old, ok := t.prev[it.GetID()]
	if !ok {
		if !t.hasPrev {
			return model1.NewRowEvent(model1.EventUnchanged, row)
		}
		return model1.NewRowEvent(model1.EventAdd, row)
	}

	patch, err := jsondiff.Compare(old, it)
	if err != nil || len(patch) == 0 {
		return model1.NewRowEvent(model1.EventUnchanged, row)
	}
	if oldRow, ok := t.prevRows[row.ID]; ok {
		return model1.NewRowEventWithDeltas(row, model1.NewDeltaRow(oldRow, row, header))
	}

	return model1.NewRowEvent(model1.EventUpdate, row)
}
