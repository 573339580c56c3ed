package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/acme/acmeui/internal/config/data"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/ui"
	"github.com/derailed/tcell/v2"
)

// MatchFunc reports whether an item matches a filter text.
type MatchFunc[T any] func(item T, text string) bool

// ListView shows a bounded collection kept resident in memory and refreshed
// periodically.
type ListView[T dao.Entity] struct {
	*ui.Table

	app   *App
	model *model.TableData[T]
	match MatchFunc[T]
}

// NewListView returns a list view over m.
func NewListView[T dao.Entity](app *App, name string, m *model.TableData[T], match MatchFunc[T]) *ListView[T] {
	return &ListView[T]{
		Table: ui.NewTable(name),
		app:   app,
		model: m,
		match: match,
	}
}

// Init initializes the view.
func (v *ListView[T]) Init(ctx context.Context) error {
	if err := v.Table.Init(ctx); err != nil {
		return err
	}
	v.SetQueueFn(v.app.QueueUpdateDraw)
	v.SetModel(v.model)
	v.SetSortFn(v.sort)
	v.model.Engine().AddFilterListener(v)
	v.Actions().Add(ui.KeyR, ui.NewKeyAction("Reload", v.reloadCmd, true))

	if s, ok := v.app.State().Sort(v.Name()); ok {
		v.SetSortColumn(s.Column, s.Desc)
	}

	return nil
}

// Start watches the collection.
func (v *ListView[T]) Start() {
	go func() {
		if err := v.model.Watch(v.app.Context()); err != nil && !errors.Is(err, context.Canceled) {
			v.app.Flash().Err(err)
		}
	}()
}

// Stop stops the refresh loop.
func (v *ListView[T]) Stop() {
	v.model.Stop()
}

// SetFilter narrows the rows to items matching text.
func (v *ListView[T]) SetFilter(text string) {
	text = strings.TrimSpace(text)
	v.SetFilterText(text)
	if text == "" {
		v.model.SetFilter(nil)
		return
	}
	needle := strings.ToLower(text)
	v.model.SetFilter(model.NewFilter(needle, func(it T) bool {
		return v.match(it, needle)
	}))
}

// FilterChanged implements model.FilterListener.
func (v *ListView[T]) FilterChanged(key string) {
	if key == "" {
		v.app.Flash().Info("Filter cleared")
		return
	}
	v.app.Flash().Infof("Filtering %s on %q", v.Name(), key)
}

func (v *ListView[T]) sort(field string, desc bool) {
	v.model.SetSort(model.SortClause{Field: field, Desc: desc})
	if col, d := v.SortColumn(); col != "" {
		v.app.State().SetSort(v.Name(), data.ViewSort{Column: col, Desc: d})
	}
}

func (v *ListView[T]) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	go func() {
		ctx, cancel := context.WithTimeout(v.app.Context(), v.app.APITimeout())
		defer cancel()
		if err := v.model.Refresh(ctx); err == nil {
			v.app.Flash().Infof("%s reloaded", v.Name())
		}
	}()
	return nil
}

// PageView shows one page of a remote collection at a time.
type PageView[T any] struct {
	*ui.Table

	app    *App
	model  *model.PageTable[T]
	cancel context.CancelFunc
	mx     sync.Mutex
}

// NewPageView returns a paged view over m.
func NewPageView[T any](app *App, name string, m *model.PageTable[T]) *PageView[T] {
	return &PageView[T]{
		Table: ui.NewTable(name),
		app:   app,
		model: m,
	}
}

// Init initializes the view.
func (v *PageView[T]) Init(ctx context.Context) error {
	if err := v.Table.Init(ctx); err != nil {
		return err
	}
	v.SetQueueFn(v.app.QueueUpdateDraw)
	v.SetModel(v.model)
	v.model.Provider().AddListener(v)
	v.Actions().Bulk(ui.KeyMap{
		ui.KeyRightBracket: ui.NewKeyAction("Next Page", v.nextCmd, true),
		ui.KeyLeftBracket:  ui.NewKeyAction("Prev Page", v.prevCmd, true),
		ui.KeyR:            ui.NewKeyAction("Reload", v.reloadCmd, true),
		ui.KeyShiftR:       ui.NewKeyAction("Reset", v.resetCmd, true),
	})

	return nil
}

// Start loads the current page.
func (v *PageView[T]) Start() {
	v.run(v.model.Refresh)
}

// Stop cancels in flight loads.
func (v *PageView[T]) Stop() {
	v.mx.Lock()
	defer v.mx.Unlock()

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// PageLoaded implements model.PageListener.
func (v *PageView[T]) PageLoaded(pageIndex int, _ []T, total *int64) {
	if total == nil {
		v.app.Flash().Infof("Page %d", pageIndex+1)
		return
	}
	v.app.Flash().Infof("%d total records", *total)
}

// PageFailed implements model.PageListener.
func (v *PageView[T]) PageFailed(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	v.app.Flash().Err(err)
}

func (v *PageView[T]) run(f func(context.Context) error) {
	v.mx.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithTimeout(v.app.Context(), v.app.APITimeout())
	v.cancel = cancel
	v.mx.Unlock()

	go func() {
		defer cancel()
		if err := f(ctx); err != nil {
			v.app.Logger().Debug("page load", "view", v.Name(), "error", err)
		}
	}()
}

func (v *PageView[T]) nextCmd(*tcell.EventKey) *tcell.EventKey {
	v.run(v.model.Next)
	return nil
}

func (v *PageView[T]) prevCmd(*tcell.EventKey) *tcell.EventKey {
	v.run(v.model.Prev)
	return nil
}

func (v *PageView[T]) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	v.run(v.model.Refresh)
	return nil
}

func (v *PageView[T]) resetCmd(*tcell.EventKey) *tcell.EventKey {
	v.run(v.model.Reset)
	return nil
}
