// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/acme/acmeui/internal/dao"
)

const defaultHandoff = 32

// Feed binds one live subscription to a bounded window.
//
// A delivery goroutine moves arrivals into a bounded handoff queue, dropping
// the oldest queued item on overflow. A pump goroutine applies each item to
// the window and hands the resulting snapshot to the update callback. Callbacks
// must not call Detach.
type Feed[T any] struct {
	source  dao.Subscriber[T]
	size    int
	handoff int
	log     *slog.Logger

	window  *Window[T]
	gen     uint64
	pending context.CancelFunc
	active  *feedSession[T]
	dropped int
	mx      sync.Mutex
}

// feedSession tracks the goroutines of one open subscription.
type feedSession[T any] struct {
	sub    dao.Subscription[T]
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFeed returns a feed keeping the size most recent items of source.
func NewFeed[T any](source dao.Subscriber[T], size int, log *slog.Logger) *Feed[T] {
	if log == nil {
		log = slog.Default()
	}
	if size <= 0 {
		size = DefaultFeedWindow
	}
	return &Feed[T]{
		source:  source,
		size:    size,
		handoff: defaultHandoff,
		log:     log,
		window:  NewWindow[T](size),
	}
}

// Snapshot returns the current window.
func (f *Feed[T]) Snapshot() []T {
	f.mx.Lock()
	w := f.window
	f.mx.Unlock()

	return w.Snapshot()
}

// Dropped returns how many arrivals were discarded on handoff overflow.
func (f *Feed[T]) Dropped() int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.dropped
}

// Subscribe opens the subscription. onUpdate receives the window after each
// arrival. onError fires at most once when the transport fails or the remote
// side ends the stream, never after Detach. A previous subscription is detached
// first. When Detach or a newer Subscribe runs while the source is still
// opening, the opened subscription is closed and ErrDetached is returned.
func (f *Feed[T]) Subscribe(ctx context.Context, onUpdate func([]T), onError func(error)) error {
	f.Detach()

	ctx, cancel := context.WithCancel(ctx)
	f.mx.Lock()
	f.gen++
	gen := f.gen
	f.pending = cancel
	f.mx.Unlock()

	sub, err := f.source.Subscribe(ctx)

	f.mx.Lock()
	if f.gen != gen {
		f.mx.Unlock()
		cancel()
		if sub != nil {
			if cerr := sub.Close(); cerr != nil {
				f.log.Debug("feed close", "error", cerr)
			}
		}
		return dao.ErrDetached
	}
	f.pending = nil
	if err != nil {
		f.mx.Unlock()
		cancel()
		return err
	}
	s := &feedSession[T]{sub: sub, cancel: cancel}
	s.wg.Add(2)
	f.active = s
	f.window = NewWindow[T](f.size)
	window := f.window
	f.mx.Unlock()

	handoff := make(chan T, f.handoff)
	var termErr error
	go func() {
		defer s.wg.Done()
		defer close(handoff)

		for item := range sub.Messages() {
			if ctx.Err() != nil {
				return
			}
			f.offer(handoff, item)
		}
		termErr = sub.Err()
	}()

	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-handoff:
				if !ok {
					if ctx.Err() == nil && onError != nil {
						onError(disconnected(termErr))
					}
					return
				}
				if ctx.Err() != nil {
					return
				}
				snap := window.Append(item)
				if onUpdate != nil {
					onUpdate(snap)
				}
			}
		}
	}()

	return nil
}

func disconnected(err error) error {
	if err == nil {
		return dao.ErrDisconnected
	}
	return fmt.Errorf("%w: %w", dao.ErrDisconnected, err)
}

// Detach closes the subscription and waits for in flight callbacks to drain.
// A subscription still opening is abandoned. No callback fires once Detach
// returns.
func (f *Feed[T]) Detach() {
	f.mx.Lock()
	f.gen++
	pending, s := f.pending, f.active
	f.pending, f.active = nil, nil
	f.mx.Unlock()

	if pending != nil {
		pending()
	}
	if s == nil {
		return
	}
	s.cancel()
	if err := s.sub.Close(); err != nil {
		f.log.Debug("feed close", "error", err)
	}
	s.wg.Wait()
}

func (f *Feed[T]) offer(q chan T, item T) {
	select {
	case q <- item:
		return
	default:
	}

	select {
	case <-q:
		f.mx.Lock()
		f.dropped++
		f.mx.Unlock()
	default:
	}
	q <- item
}
