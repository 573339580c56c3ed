package model

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/model1"
)

type fakeLister struct {
	mx    sync.Mutex
	tasks []dao.Task
	fail  error
}

func (f *fakeLister) List(context.Context) ([]dao.Task, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.fail != nil {
		return nil, f.fail
	}
	return append([]dao.Task(nil), f.tasks...), nil
}

func (f *fakeLister) set(tt []dao.Task, err error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.tasks, f.fail = tt, err
}

type taskRenderer struct{}

func (taskRenderer) Header() model1.Header {
	return model1.Header{
		{Name: "ID"},
		{Name: "NAME"},
		{Name: "PRIORITY", Attrs: model1.Attrs{Number: true}},
	}
}

func (taskRenderer) Render(o any, row *model1.Row) error {
	t, ok := o.(dao.Task)
	if !ok {
		return errors.New("not a task")
	}
	row.ID = t.ID
	row.Fields = model1.Fields{t.ID, t.Name, strconv.Itoa(t.Priority)}
	return nil
}

func (taskRenderer) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}

func taskField(t dao.Task, field string) any {
	switch field {
	case "name":
		return t.Name
	case "priority":
		return t.Priority
	default:
		return t.ID
	}
}

func rowIDs(d *model1.TableData) []string {
	var ids []string
	d.RowEvents().Range(func(_ int, re model1.RowEvent) bool {
		ids = append(ids, re.Row.ID)
		return true
	})
	return ids
}

func kindOf(t *testing.T, d *model1.TableData, id string) model1.ResEvent {
	t.Helper()

	re, ok := d.RowEvents().Get(id)
	if !ok {
		t.Fatalf("row %s not found", id)
	}
	return re.Kind
}

func TestTableDataRefresh(t *testing.T) {
	l := fakeLister{tasks: []dao.Task{
		{ID: "t1", Name: "approve", Priority: 50},
		{ID: "t2", Name: "review", Priority: 80},
		{ID: "t3", Name: "archive", Priority: 10},
	}}
	td := NewTableData[dao.Task]("tasks", &l, taskRenderer{}, taskField, 0, quietLogger())
	spy := tableSpy{}
	td.AddListener(&spy)

	if err := td.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if spy.changed != 1 {
		t.Fatalf("expected 1 change notification, got %d", spy.changed)
	}
	if td.RowCount() != 3 {
		t.Errorf("expected 3 rows, got %d", td.RowCount())
	}
	if kindOf(t, td.Peek(), "t1") != model1.EventUnchanged {
		t.Error("expected the first load to be unchanged")
	}
	if n, ok := td.Peek().Total(); !ok || n != 3 {
		t.Errorf("expected total 3, got %d", n)
	}

	td.SetSort(SortClause{Field: "priority", Desc: true})
	if got := rowIDs(td.Peek()); len(got) != 3 || got[0] != "t2" || got[2] != "t3" {
		t.Errorf("unexpected order %v", got)
	}

	td.SetFilter(NewFilter("urgent", func(t dao.Task) bool { return t.Priority > 40 }))
	if got := rowIDs(td.Peek()); len(got) != 2 {
		t.Errorf("expected 2 filtered rows, got %v", got)
	}
	if td.Filter() != "urgent" {
		t.Errorf("expected filter urgent, got %q", td.Filter())
	}
	if n, _ := td.Peek().Total(); n != 3 {
		t.Errorf("expected the total to count the whole dataset, got %d", n)
	}
}

func TestTableDataDeltas(t *testing.T) {
	l := fakeLister{tasks: []dao.Task{
		{ID: "t1", Name: "approve", Priority: 50},
		{ID: "t2", Name: "review", Priority: 80},
	}}
	td := NewTableData[dao.Task]("tasks", &l, taskRenderer{}, taskField, 0, quietLogger())
	if err := td.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	l.set([]dao.Task{
		{ID: "t1", Name: "approve", Priority: 50},
		{ID: "t2", Name: "review", Priority: 90},
		{ID: "t4", Name: "sign", Priority: 5},
	}, nil)
	if err := td.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	d := td.Peek()
	if k := kindOf(t, d, "t1"); k != model1.EventUnchanged {
		t.Errorf("t1: expected unchanged, got %d", k)
	}
	if k := kindOf(t, d, "t2"); k != model1.EventUpdate {
		t.Errorf("t2: expected update, got %d", k)
	}
	if k := kindOf(t, d, "t4"); k != model1.EventAdd {
		t.Errorf("t4: expected add, got %d", k)
	}
	re, _ := d.RowEvents().Get("t2")
	if len(re.Deltas) != 3 || re.Deltas[2] != "80" {
		t.Errorf("expected the old priority in the deltas, got %v", re.Deltas)
	}
}

func TestTableDataRefreshFailure(t *testing.T) {
	l := fakeLister{tasks: []dao.Task{{ID: "t1", Name: "approve"}}}
	td := NewTableData[dao.Task]("tasks", &l, taskRenderer{}, taskField, 0, quietLogger())
	spy := tableSpy{}
	td.AddListener(&spy)
	if err := td.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	l.set(nil, errors.New("down"))
	if err := td.Refresh(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(spy.errs) != 1 {
		t.Errorf("expected 1 failure notification, got %d", len(spy.errs))
	}
	if td.RowCount() != 1 {
		t.Errorf("expected the previous rows to be kept, got %d", td.RowCount())
	}
}

func TestTableDataNoData(t *testing.T) {
	td := NewTableData[dao.Task]("tasks", &fakeLister{}, taskRenderer{}, taskField, 0, quietLogger())
	spy := tableSpy{}
	td.AddListener(&spy)

	if err := td.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if spy.noData != 1 || spy.changed != 0 {
		t.Errorf("expected a no data notification, got %d/%d", spy.noData, spy.changed)
	}
	td.RemoveListener(&spy)
	td.Reconcile()
	if spy.noData != 1 {
		t.Errorf("expected no notification after removal, got %d", spy.noData)
	}
}

type gatedRenderer struct {
	taskRenderer

	once             sync.Once
	entered, release chan struct{}
}

func (g *gatedRenderer) Render(o any, row *model1.Row) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.taskRenderer.Render(o, row)
}

func TestTableDataFilterDuringRefresh(t *testing.T) {
	l := fakeLister{tasks: []dao.Task{
		{ID: "t1", Name: "approve", Priority: 50},
		{ID: "t2", Name: "review", Priority: 80},
		{ID: "t3", Name: "archive", Priority: 10},
	}}
	r := gatedRenderer{entered: make(chan struct{}), release: make(chan struct{})}
	td := NewTableData[dao.Task]("tasks", &l, &r, taskField, 0, quietLogger())
	spy := tableSpy{}
	td.AddListener(&spy)
	td.SetFilter(NewFilter("high", func(t dao.Task) bool { return t.Priority > 40 }))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := td.Refresh(context.Background()); err != nil {
			t.Error(err)
		}
	}()
	<-r.entered
	go func() {
		defer wg.Done()
		td.SetFilter(NewFilter("low", func(t dao.Task) bool { return t.Priority <= 40 }))
	}()
	time.Sleep(20 * time.Millisecond)
	close(r.release)
	wg.Wait()

	if got := rowIDs(td.Peek()); len(got) != 1 || got[0] != "t3" {
		t.Errorf("expected rows for the latest filter, got %v", got)
	}
	spy.mx.Lock()
	defer spy.mx.Unlock()
	if got := rowIDs(spy.last); len(got) != 1 || got[0] != "t3" {
		t.Errorf("expected the last notification for the latest filter, got %v", got)
	}
}
