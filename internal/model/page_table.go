package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 50

// PageTable renders one page of a remote collection at a time.
type PageTable[T any] struct {
	tableListeners

	title    string
	provider *PagedProvider[T]
	renderer model1.Renderer
	size     int
	page     int
	data     *model1.TableData
	log      *slog.Logger
	mx       sync.RWMutex
}

// NewPageTable returns a page table over fetcher.
func NewPageTable[T any](title string, fetcher dao.PageFetcher[T], r model1.Renderer, size int, log *slog.Logger) *PageTable[T] {
	if log == nil {
		log = slog.Default()
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	data := model1.NewTableData()
	data.SetTitle(title)
	data.SetHeader(r.Header())

	return &PageTable[T]{
		title:    title,
		provider: NewPagedProvider(fetcher, log),
		renderer: r,
		size:     size,
		data:     data,
		log:      log,
	}
}

// SetTitle renames the table. The next load picks it up.
func (p *PageTable[T]) SetTitle(title string) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.title = title
}

// Provider returns the paged provider.
func (p *PageTable[T]) Provider() *PagedProvider[T] {
	return p.provider
}

// Page returns the current page index.
func (p *PageTable[T]) Page() int {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return p.page
}

// PageCount returns the number of pages when the record count is known.
func (p *PageTable[T]) PageCount() (int, bool) {
	n, ok := p.provider.Total()
	if !ok {
		return 0, false
	}
	return int((n + int64(p.size) - 1) / int64(p.size)), true
}

// Peek returns the current table data.
func (p *PageTable[T]) Peek() *model1.TableData {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return p.data.Clone()
}

// Refresh reloads the current page.
func (p *PageTable[T]) Refresh(ctx context.Context) error {
	return p.Load(ctx, p.Page())
}

// Reset drops the cached count and reloads the first page.
func (p *PageTable[T]) Reset(ctx context.Context) error {
	p.provider.Reset()
	return p.Load(ctx, 0)
}

// Next loads the following page. It stays put past the last known page.
func (p *PageTable[T]) Next(ctx context.Context) error {
	next := p.Page() + 1
	if pages, ok := p.PageCount(); ok && next >= pages {
		return nil
	}
	return p.Load(ctx, next)
}

// Prev loads the previous page.
func (p *PageTable[T]) Prev(ctx context.Context) error {
	prev := p.Page() - 1
	if prev < 0 {
		return nil
	}
	return p.Load(ctx, prev)
}

// Load fetches and renders page pageIndex. On failure the previous rows are
// kept. A cancelled load returns its error without notifying listeners.
func (p *PageTable[T]) Load(ctx context.Context, pageIndex int) error {
	p.mx.RLock()
	title := p.title
	p.mx.RUnlock()

	page, err := p.provider.RequestPage(ctx, pageIndex, p.size)
	if errors.Is(err, dao.ErrStale) {
		return nil
	}
	if err != nil {
		if !errors.Is(ctx.Err(), context.Canceled) {
			p.notifyLoadFailed(err)
		}
		return err
	}

	header := p.renderer.Header()
	rows := model1.NewRowEvents(len(page.Items))
	for i, it := range page.Items {
		row := model1.NewRow(len(header))
		if err := p.renderer.Render(it, &row); err != nil {
			p.log.Warn("render failed", "table", title, "page", pageIndex, "index", i, "error", err)
			continue
		}
		rows.Add(model1.NewRowEvent(model1.EventUnchanged, row))
	}

	data := model1.NewTableData()
	data.SetHeader(header)
	data.SetRowEvents(rows)
	data.SetTitle(fmt.Sprintf("%s page %d", title, pageIndex+1))
	if page.Total != nil {
		data.SetTotal(*page.Total)
	}

	p.mx.Lock()
	p.page, p.data = pageIndex, data
	p.mx.Unlock()

	if rows.Empty() {
		p.notifyNoData(data.Clone())
		return nil
	}
	p.notifyDataChanged(data.Clone())

	return nil
}
