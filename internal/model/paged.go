// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/acme/acmeui/internal/dao"
	"golang.org/x/sync/errgroup"
)

// PageListener represents a paged provider listener.
type PageListener[T any] interface {
	// PageLoaded notifies a page and the record count landed together.
	PageLoaded(pageIndex int, items []T, total *int64)

	// PageFailed notifies a page request failed.
	PageFailed(error)
}

// PagedProvider fetches fixed size pages on demand. The record count is
// fetched alongside page 0 and reused for every later page until Reset.
type PagedProvider[T any] struct {
	fetcher   dao.PageFetcher[T]
	state     *ProviderState
	listeners []PageListener[T]
	log       *slog.Logger
	mx        sync.RWMutex
}

// NewPagedProvider returns a provider over fetcher.
func NewPagedProvider[T any](fetcher dao.PageFetcher[T], log *slog.Logger) *PagedProvider[T] {
	return NewPagedProviderWithState(fetcher, nil, log)
}

// NewPagedProviderWithState returns a provider recording its count in state.
// The caller owns state and may inspect or reset it. A nil state gets a fresh one.
func NewPagedProviderWithState[T any](fetcher dao.PageFetcher[T], state *ProviderState, log *slog.Logger) *PagedProvider[T] {
	if log == nil {
		log = slog.Default()
	}
	if state == nil {
		state = new(ProviderState)
	}
	return &PagedProvider[T]{
		fetcher: fetcher,
		state:   state,
		log:     log,
	}
}

// State returns the provider state.
func (p *PagedProvider[T]) State() *ProviderState {
	return p.state
}

// Total returns the cached record count, if known.
func (p *PagedProvider[T]) Total() (int64, bool) {
	return p.state.Count()
}

// Reset drops the cached count. In flight responses are discarded.
func (p *PagedProvider[T]) Reset() {
	p.state.Reset()
	p.log.Debug("paged provider reset")
}

// RequestPage fetches a page. Page 0 also establishes the record count if the
// provider has none yet. Errors are returned and published to listeners, except
// for stale responses and caller cancellation which are only returned.
func (p *PagedProvider[T]) RequestPage(ctx context.Context, pageIndex, pageSize int) (dao.Page[T], error) {
	if err := dao.CheckPage(pageIndex, pageSize); err != nil {
		return dao.Page[T]{}, err
	}

	gen := p.state.Generation()
	withCount := pageIndex == 0 && p.state.needsCount()

	var (
		page  dao.Page[T]
		count int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = p.fetcher.FetchPage(gctx, pageIndex, pageSize)
		return err
	})
	if withCount {
		g.Go(func() error {
			var err error
			count, err = p.fetcher.Count(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		if !p.state.current(gen) {
			return dao.Page[T]{}, fmt.Errorf("page %d: %w", pageIndex, dao.ErrStale)
		}
		err = fmt.Errorf("request page %d: %w", pageIndex, err)
		if errors.Is(ctx.Err(), context.Canceled) {
			p.log.Debug("page request cancelled", "page", pageIndex)
			return dao.Page[T]{}, err
		}
		p.log.Error("page request failed", "page", pageIndex, "size", pageSize, "error", err)
		p.fireFailed(err)
		return dao.Page[T]{}, err
	}

	total, ok := p.state.commit(gen, withCount, count)
	if !ok {
		p.log.Debug("dropping stale page", "page", pageIndex)
		return dao.Page[T]{}, fmt.Errorf("page %d: %w", pageIndex, dao.ErrStale)
	}
	if withCount {
		p.log.Debug("record count established", "count", count)
	}

	items := page.Items
	if items == nil {
		items = []T{}
	}
	res := dao.Page[T]{Items: items, Total: total}
	p.fireLoaded(pageIndex, res.Items, res.Total)

	return res, nil
}

// AddListener registers a page listener.
func (p *PagedProvider[T]) AddListener(l PageListener[T]) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.listeners = append(p.listeners, l)
}

// RemoveListener unregisters a page listener.
func (p *PagedProvider[T]) RemoveListener(l PageListener[T]) {
	p.mx.Lock()
	defer p.mx.Unlock()

	for i, lis := range p.listeners {
		if lis == l {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}

func (p *PagedProvider[T]) fireLoaded(pageIndex int, items []T, total *int64) {
	for _, l := range p.snapshotListeners() {
		l.PageLoaded(pageIndex, items, total)
	}
}

func (p *PagedProvider[T]) fireFailed(err error) {
	for _, l := range p.snapshotListeners() {
		l.PageFailed(err)
	}
}

func (p *PagedProvider[T]) snapshotListeners() []PageListener[T] {
	p.mx.RLock()
	defer p.mx.RUnlock()

	ll := make([]PageListener[T], len(p.listeners))
	copy(ll, p.listeners)

	return ll
}
