package model

import "sync"

// DefaultFeedWindow is the number of recent feed items kept on screen.
const DefaultFeedWindow = 11

// Window is a fixed size circular buffer keeping the most recent items in
// arrival order. Goroutine-safe.
type Window[T any] struct {
	buf   []T
	size  int
	head  int
	count int
	mx    sync.Mutex
}

// NewWindow returns a window holding up to size items.
func NewWindow[T any](size int) *Window[T] {
	if size <= 0 {
		size = DefaultFeedWindow
	}
	return &Window[T]{
		buf:  make([]T, size),
		size: size,
	}
}

// Append adds item, evicting the oldest when full, and returns the new
// window contents oldest first.
func (w *Window[T]) Append(item T) []T {
	w.mx.Lock()
	defer w.mx.Unlock()

	w.buf[w.head] = item
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}

	return w.snapshot()
}

// Snapshot returns a copy of the window oldest first.
func (w *Window[T]) Snapshot() []T {
	w.mx.Lock()
	defer w.mx.Unlock()

	return w.snapshot()
}

// Last returns the most recent item.
func (w *Window[T]) Last() (T, bool) {
	w.mx.Lock()
	defer w.mx.Unlock()

	var zero T
	if w.count == 0 {
		return zero, false
	}

	return w.buf[(w.head-1+w.size)%w.size], true
}

// Len returns the number of items held.
func (w *Window[T]) Len() int {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.count
}

// Cap returns the window capacity.
func (w *Window[T]) Cap() int {
	return w.size
}

func (w *Window[T]) snapshot() []T {
	out := make([]T, w.count)
	if w.count < w.size {
		copy(out, w.buf[:w.count])
		return out
	}
	n := copy(out, w.buf[w.head:])
	copy(out[n:], w.buf[:w.head])

	return out
}
