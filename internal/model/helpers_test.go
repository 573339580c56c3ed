package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFetcher struct {
	items  []string
	counts []int64
	fail   error

	mx         sync.Mutex
	countCalls int
	pageCalls  int
	gate       chan struct{}
}

func newFakeFetcher(n int, counts ...int64) *fakeFetcher {
	ii := make([]string, n)
	for i := range ii {
		ii[i] = "item-" + strconv.Itoa(i)
	}
	return &fakeFetcher{items: ii, counts: counts}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, idx, size int) (dao.Page[string], error) {
	f.mx.Lock()
	f.pageCalls++
	gate, fail := f.gate, f.fail
	f.mx.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return dao.Page[string]{}, ctx.Err()
		}
	}
	if fail != nil {
		return dao.Page[string]{}, fail
	}

	start := min(idx*size, len(f.items))
	end := min(start+size, len(f.items))

	return dao.Page[string]{Items: f.items[start:end]}, nil
}

func (f *fakeFetcher) Count(context.Context) (int64, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	i := min(f.countCalls, len(f.counts)-1)
	f.countCalls++
	if i < 0 {
		return int64(len(f.items)), nil
	}

	return f.counts[i], nil
}

func (f *fakeFetcher) CountCalls() int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.countCalls
}

type failingCounter struct {
	*fakeFetcher
}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("count boom")
}

type pageSpy struct {
	mx     sync.Mutex
	loaded []string
	failed []error
}

func (s *pageSpy) PageLoaded(idx int, items []string, total *int64) {
	s.mx.Lock()
	defer s.mx.Unlock()

	t := "nil"
	if total != nil {
		t = strconv.FormatInt(*total, 10)
	}
	s.loaded = append(s.loaded, fmt.Sprintf("%d:%d:%s", idx, len(items), t))
}

func (s *pageSpy) PageFailed(err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.failed = append(s.failed, err)
}

func (s *pageSpy) counts() (int, int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.loaded), len(s.failed)
}

type tableSpy struct {
	mx      sync.Mutex
	changed int
	noData  int
	errs    []error
	last    *model1.TableData
}

func (s *tableSpy) TableNoData(d *model1.TableData) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.noData++
	s.last = d
}

func (s *tableSpy) TableDataChanged(d *model1.TableData) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.changed++
	s.last = d
}

func (s *tableSpy) TableLoadFailed(err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.errs = append(s.errs, err)
}

type stringRenderer struct{}

func (stringRenderer) Header() model1.Header {
	return model1.Header{{Name: "NAME"}}
}

func (stringRenderer) Render(o any, row *model1.Row) error {
	s, ok := o.(string)
	if !ok {
		return fmt.Errorf("expected string but got %T", o)
	}
	row.ID, row.Fields = s, model1.Fields{s}
	return nil
}

func (stringRenderer) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}
