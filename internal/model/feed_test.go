package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acme/acmeui/internal/dao"
)

type fakeSub struct {
	msgs chan string
	err  error
	once sync.Once
	mx   sync.Mutex
}

func (s *fakeSub) Messages() <-chan string { return s.msgs }

func (s *fakeSub) Err() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.err
}

func (s *fakeSub) Close() error {
	s.once.Do(func() { close(s.msgs) })
	return nil
}

func (s *fakeSub) fail(err error) {
	s.mx.Lock()
	s.err = err
	s.mx.Unlock()
	_ = s.Close()
}

type fakeSource struct {
	sub  *fakeSub
	fail error
	ctx  context.Context
}

func (f *fakeSource) Subscribe(ctx context.Context) (dao.Subscription[string], error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.ctx = ctx
	f.sub = &fakeSub{msgs: make(chan string, 100)}
	return f.sub, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never met")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFeedWindow(t *testing.T) {
	src := fakeSource{}
	f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

	var (
		mx    sync.Mutex
		calls int
		last  []string
	)
	err := f.Subscribe(context.Background(), func(snap []string) {
		mx.Lock()
		defer mx.Unlock()
		calls++
		last = snap
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Detach()

	for i := 1; i <= 15; i++ {
		src.sub.msgs <- fmt.Sprintf("m%d", i)
	}
	waitFor(t, func() bool {
		mx.Lock()
		defer mx.Unlock()
		return calls == 15
	})

	mx.Lock()
	defer mx.Unlock()
	if len(last) != 11 || last[0] != "m5" || last[10] != "m15" {
		t.Errorf("expected m5..m15, got %v", last)
	}
	if got := f.Snapshot(); len(got) != 11 || got[0] != "m5" {
		t.Errorf("unexpected snapshot %v", got)
	}
}

func TestFeedDetachStopsCallbacks(t *testing.T) {
	src := fakeSource{}
	f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

	var calls atomic.Int32
	entered, release := make(chan struct{}), make(chan struct{})
	err := f.Subscribe(context.Background(), func([]string) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 5 {
		src.sub.msgs <- fmt.Sprintf("m%d", i)
	}
	<-entered

	detached := make(chan struct{})
	go func() {
		f.Detach()
		close(detached)
	}()

	waitFor(t, func() bool { return src.ctx.Err() != nil })
	select {
	case <-detached:
		t.Fatal("detach returned while a callback was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-detached
	n := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != n {
		t.Errorf("expected no callback after detach, got %d then %d", n, calls.Load())
	}
	if n != 1 {
		t.Errorf("expected queued items to be discarded, got %d callbacks", n)
	}
}

func TestFeedTerminalError(t *testing.T) {
	src := fakeSource{}
	f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

	var (
		updates atomic.Int32
		errs    = make(chan error, 2)
	)
	err := f.Subscribe(context.Background(), func([]string) {
		updates.Add(1)
	}, func(err error) {
		errs <- err
	})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Detach()

	boom := errors.New("boom")
	src.sub.msgs <- "m1"
	src.sub.fail(boom)

	select {
	case err := <-errs:
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error never surfaced")
	}
	select {
	case err := <-errs:
		t.Errorf("expected a single error, got another %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	if updates.Load() != 1 {
		t.Errorf("expected the queued item to be applied, got %d", updates.Load())
	}
}

func TestFeedRemoteClose(t *testing.T) {
	uu := map[string]struct {
		detach bool
		fail   error
		notify bool
	}{
		"clean": {
			notify: true,
		},
		"failed": {
			fail:   errors.New("reset by peer"),
			notify: true,
		},
		"detached": {
			detach: true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			src := fakeSource{}
			f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

			errs := make(chan error, 2)
			if err := f.Subscribe(context.Background(), nil, func(err error) { errs <- err }); err != nil {
				t.Fatal(err)
			}
			defer f.Detach()

			switch {
			case u.detach:
				f.Detach()
			case u.fail != nil:
				src.sub.fail(u.fail)
			default:
				_ = src.sub.Close()
			}

			select {
			case err := <-errs:
				if !u.notify {
					t.Fatalf("expected no notification, got %v", err)
				}
				if !errors.Is(err, dao.ErrDisconnected) {
					t.Errorf("expected a disconnect, got %v", err)
				}
				if u.fail != nil && !errors.Is(err, u.fail) {
					t.Errorf("expected the transport error to be wrapped, got %v", err)
				}
			case <-time.After(100 * time.Millisecond):
				if u.notify {
					t.Fatal("remote close never surfaced")
				}
			}
		})
	}
}

type gatedSource struct {
	gate    chan struct{}
	entered chan struct{}
	sub     *fakeSub
}

func (g *gatedSource) Subscribe(context.Context) (dao.Subscription[string], error) {
	close(g.entered)
	<-g.gate
	g.sub = &fakeSub{msgs: make(chan string, 10)}
	return g.sub, nil
}

func TestFeedDetachWhileOpening(t *testing.T) {
	src := gatedSource{gate: make(chan struct{}), entered: make(chan struct{})}
	f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

	var updates atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- f.Subscribe(context.Background(), func([]string) { updates.Add(1) }, nil)
	}()

	<-src.entered
	f.Detach()
	close(src.gate)

	if err := <-done; !errors.Is(err, dao.ErrDetached) {
		t.Fatalf("expected ErrDetached, got %v", err)
	}
	select {
	case _, ok := <-src.sub.msgs:
		if ok {
			t.Fatal("expected the abandoned subscription to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("abandoned subscription left open")
	}
	if n := updates.Load(); n != 0 {
		t.Errorf("expected no updates after detach, got %d", n)
	}
}

func TestFeedSubscribeFails(t *testing.T) {
	src := fakeSource{fail: errors.New("refused")}
	f := NewFeed[string](&src, DefaultFeedWindow, quietLogger())

	if err := f.Subscribe(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error")
	}
	f.Detach()
}

func TestFeedHandoffDropsOldest(t *testing.T) {
	f := NewFeed[string](&fakeSource{}, 3, quietLogger())
	q := make(chan string, 2)

	for _, s := range []string{"a", "b", "c", "d"} {
		f.offer(q, s)
	}
	close(q)

	var got []string
	for s := range q {
		got = append(got, s)
	}
	if fmt.Sprint(got) != "[c d]" {
		t.Errorf("expected [c d], got %v", got)
	}
	if f.Dropped() != 2 {
		t.Errorf("expected 2 drops, got %d", f.Dropped())
	}
}
