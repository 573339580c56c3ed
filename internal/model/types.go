package model

import (
	"context"
	"sync"

	"github.com/acme/acmeui/internal/model1"
)

// TableListener represents a table model listener.
type TableListener interface {
	// TableNoData notifies listener no data was found.
	TableNoData(*model1.TableData)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}

// Tabular represents a model a table view can render.
type Tabular interface {
	// Peek returns the current table data.
	Peek() *model1.TableData

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}

type tableListeners struct {
	listeners []TableListener
	mx        sync.RWMutex
}

func (t *tableListeners) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *tableListeners) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

func (t *tableListeners) snapshot() []TableListener {
	t.mx.RLock()
	defer t.mx.RUnlock()

	ll := make([]TableListener, len(t.listeners))
	copy(ll, t.listeners)

	return ll
}

func (t *tableListeners) notifyNoData(data *model1.TableData) {
	for _, l := range t.snapshot() {
		l.TableNoData(data)
	}
}

func (t *tableListeners) notifyDataChanged(data *model1.TableData) {
	for _, l := range t.snapshot() {
		l.TableDataChanged(data)
	}
}

func (t *tableListeners) notifyLoadFailed(err error) {
	for _, l := range t.snapshot() {
		l.TableLoadFailed(err)
	}
}
