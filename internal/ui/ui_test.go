package ui

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/acme/acmeui/internal/model"
	"github.com/acme/acmeui/internal/model1"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeText(c *CmdBar, s string) {
	for _, r := range s {
		c.keyboard(runeKey(r))
	}
}

func TestKeyActions(t *testing.T) {
	var hit string
	aa := NewKeyActions()
	aa.Bulk(KeyMap{
		KeyD:           NewKeyAction("Next", func(*tcell.EventKey) *tcell.EventKey { hit = "next"; return nil }, true),
		tcell.KeyCtrlR: NewKeyAction("Refresh", func(*tcell.EventKey) *tcell.EventKey { hit = "refresh"; return nil }, true),
		KeyR:           NewKeyAction("Hidden", nil, false),
	})

	if evt := aa.Handle(runeKey('d')); evt != nil || hit != "next" {
		t.Fatalf("expected rune binding to fire, got %v %q", evt, hit)
	}
	if evt := aa.Handle(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl)); evt != nil || hit != "refresh" {
		t.Fatalf("expected ctrl binding to fire, got %v %q", evt, hit)
	}
	if evt := aa.Handle(runeKey('z')); evt == nil {
		t.Fatal("expected unbound key to pass through")
	}
	if evt := aa.Handle(runeKey('r')); evt == nil {
		t.Fatal("expected nil action to pass through")
	}

	visible := 0
	for _, h := range aa.Hints() {
		if h.Visible {
			visible++
		}
	}
	if visible != 2 {
		t.Errorf("expected 2 visible hints, got %d", visible)
	}

	aa.Delete(KeyD)
	if _, ok := aa.Get(KeyD); ok {
		t.Error("expected binding to be deleted")
	}
	if aa.Len() != 2 {
		t.Errorf("expected 2 bindings, got %d", aa.Len())
	}
}

func TestMenuHintsLess(t *testing.T) {
	hh := MenuHints{
		{Mnemonic: "b", Description: "Zed", Visible: true},
		{Mnemonic: "2", Description: "Two", Visible: true},
		{Mnemonic: "a", Description: "Alpha", Visible: true},
		{Mnemonic: "1", Description: "One", Visible: true},
	}
	sort.Sort(hh)

	want := []string{"1", "2", "a", "b"}
	for i, w := range want {
		if hh[i].Mnemonic != w {
			t.Errorf("position %d: expected %q, got %q", i, w, hh[i].Mnemonic)
		}
	}
}

func TestMenuHydrate(t *testing.T) {
	hh := make(MenuHints, 0, 8)
	for i, d := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf"} {
		hh = append(hh, MenuHint{Mnemonic: string(rune('a' + i)), Description: d, Visible: true})
	}
	hh = append(hh, MenuHint{Mnemonic: "z", Description: "Hidden"})

	m := NewMenu()
	m.HydrateMenu(hh)

	if m.GetColumnCount() != 2 {
		t.Fatalf("expected 2 columns, got %d", m.GetColumnCount())
	}
	if got := m.GetCell(0, 1).Text; !strings.Contains(got, "Golf") {
		t.Errorf("expected the seventh hint to wrap, got %q", got)
	}
	for r := range m.GetRowCount() {
		for c := range m.GetColumnCount() {
			if strings.Contains(m.GetCell(r, c).Text, "Hidden") {
				t.Fatal("hidden hint rendered")
			}
		}
	}
}

type fakeComponent struct {
	*tview.Box
	name    string
	started int
	stopped int
}

func newFakeComponent(name string) *fakeComponent {
	return &fakeComponent{Box: tview.NewBox(), name: name}
}

func (f *fakeComponent) Name() string               { return f.name }
func (f *fakeComponent) Init(context.Context) error { return nil }
func (f *fakeComponent) Start()                     { f.started++ }
func (f *fakeComponent) Stop()                      { f.stopped++ }
func (f *fakeComponent) Hints() MenuHints           { return nil }

func TestPagesStack(t *testing.T) {
	p := NewPages()
	crumbs := NewCrumbs(p)
	p.AddListener(crumbs)

	orders, help := newFakeComponent("orders"), newFakeComponent("help")
	p.Push(orders)
	p.Push(help)

	if p.StackSize() != 2 || p.Top() != help {
		t.Fatalf("unexpected stack %v", p.Flatten())
	}
	if orders.stopped != 1 {
		t.Errorf("expected the covered view to stop, got %d", orders.stopped)
	}
	if got := crumbs.GetText(true); !strings.Contains(got, "<help>") {
		t.Errorf("expected crumbs to show help, got %q", got)
	}

	if _, ok := p.Pop(); !ok {
		t.Fatal("expected pop")
	}
	if orders.started != 1 || help.stopped != 1 {
		t.Errorf("expected restart of orders and stop of help, got %d %d", orders.started, help.stopped)
	}
	if _, ok := p.Pop(); ok {
		t.Fatal("expected the root view to stay")
	}

	tasks := newFakeComponent("tasks")
	p.Replace(tasks)
	if got := p.Flatten(); len(got) != 1 || got[0] != "tasks" {
		t.Errorf("expected only tasks, got %v", got)
	}
}

func TestCmdBarCommand(t *testing.T) {
	var got string
	c := NewCmdBar([]string{"orders", "notifications", "tasks"})
	c.SetCommandFn(func(s string) { got = s })

	c.Activate(ModeCommand)
	typeText(c, "no")
	c.keyboard(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if c.GetText() != "notifications" {
		t.Fatalf("expected completion, got %q", c.GetText())
	}
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if got != ":notifications" {
		t.Errorf("expected command, got %q", got)
	}
	if c.IsActive() {
		t.Error("expected bar to deactivate")
	}
}

func TestCmdBarFilter(t *testing.T) {
	var live []string
	c := NewCmdBar(nil)
	c.SetFilterFn(func(s string) { live = append(live, s) })

	c.Activate(ModeFilter)
	typeText(c, "ab")
	c.keyboard(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	want := []string{"a", "ab", "a"}
	if strings.Join(live, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, live)
	}
	if c.GetFilterText() != "a" {
		t.Errorf("expected confirmed filter, got %q", c.GetFilterText())
	}

	c.ClearFilter()
	if c.GetFilterText() != "" || live[len(live)-1] != "" {
		t.Error("expected filter to clear")
	}
}

func TestCmdBarSend(t *testing.T) {
	var sent []string
	c := NewCmdBar(nil)
	c.SetSendFn(func(s string) { sent = append(sent, s) })

	c.Activate(ModeSend)
	typeText(c, "hello there")
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	c.Activate(ModeSend)
	typeText(c, "   ")
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	c.Activate(ModeSend)
	typeText(c, "never")
	c.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))

	if len(sent) != 1 || sent[0] != "hello there" {
		t.Errorf("expected one message, got %v", sent)
	}
}

type fakeTabular struct {
	data      *model1.TableData
	listeners []model.TableListener
}

func (f *fakeTabular) Peek() *model1.TableData       { return f.data }
func (f *fakeTabular) Refresh(context.Context) error { return nil }
func (f *fakeTabular) AddListener(l model.TableListener) {
	f.listeners = append(f.listeners, l)
}
func (f *fakeTabular) RemoveListener(model.TableListener) {
	f.listeners = nil
}

func makeTableData() *model1.TableData {
	data := model1.NewTableData()
	data.SetTitle("tasks")
	data.SetHeader(model1.Header{
		{Name: "NAME", Attrs: model1.Attrs{SortField: "name"}},
		{Name: "NOTE"},
		{Name: "PRIORITY", Attrs: model1.Attrs{SortField: "priority", Number: true}},
	})
	re := model1.NewRowEvents(2)
	re.Add(model1.NewRowEvent(model1.EventUnchanged, model1.Row{ID: "t1", Fields: model1.Fields{"approve", "x", "1"}}))
	re.Add(model1.NewRowEvent(model1.EventAdd, model1.Row{ID: "t2", Fields: model1.Fields{"review", "y", "3"}}))
	data.SetRowEvents(re)
	data.SetTotal(5)

	return data
}

func TestTableRender(t *testing.T) {
	tb := NewTable("tasks")
	if err := tb.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	m := &fakeTabular{data: makeTableData()}
	tb.SetModel(m)
	if len(m.listeners) != 1 {
		t.Fatal("expected table to listen on the model")
	}

	tb.TableDataChanged(m.data)

	if tb.GetRowCount() != 3 {
		t.Fatalf("expected header and 2 rows, got %d", tb.GetRowCount())
	}
	if got := TrimCell(tb.Table, 0, 2); got != "PRIORITY" {
		t.Errorf("unexpected header %q", got)
	}
	if got := tb.GetSelectedItem(); got != "t1" {
		t.Errorf("expected first row selected, got %q", got)
	}
	if !strings.Contains(tb.Title(), "2/5") {
		t.Errorf("expected counts in title, got %q", tb.Title())
	}
	if c := tb.GetCell(2, 0); c.Color != tcell.Color(model1.AddColor) {
		t.Errorf("expected added row color, got %v", c.Color)
	}

	tb.SetFilterText("rev")
	if !strings.Contains(tb.Title(), "/rev") {
		t.Errorf("expected filter in title, got %q", tb.Title())
	}

	tb.TableLoadFailed(context.DeadlineExceeded)
	if tb.GetRowCount() != 3 {
		t.Errorf("expected rows to survive a failed load, got %d", tb.GetRowCount())
	}

	tb.TableNoData(model1.NewTableData())
	if got := TrimCell(tb.Table, 0, 0); got != noDataMsg {
		t.Errorf("expected no data message, got %q", got)
	}
}

func TestTableSort(t *testing.T) {
	type call struct {
		field string
		desc  bool
	}
	var calls []call

	tb := NewTable("tasks")
	if err := tb.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	tb.SetSortFn(func(f string, d bool) { calls = append(calls, call{f, d}) })
	tb.UpdateUI(makeTableData())

	tb.Actions().Handle(runeKey('s'))
	tb.Actions().Handle(runeKey('s'))
	tb.Actions().Handle(runeKey('I'))
	tb.Actions().Handle(runeKey('s'))

	want := []call{{"name", false}, {"priority", false}, {"priority", true}, {"name", true}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %v, got %v", i, want[i], calls[i])
		}
	}

	if !tb.SetSortColumn("PRIORITY", false) {
		t.Fatal("expected sortable column")
	}
	if tb.SetSortColumn("NOTE", false) {
		t.Error("expected unsortable column to be rejected")
	}
	name, desc := tb.SortColumn()
	if name != "PRIORITY" || desc {
		t.Errorf("unexpected sort column %q %t", name, desc)
	}
}

func TestFeedList(t *testing.T) {
	f := NewFeedList("chat")
	f.SetLines([]string{"[a] bob: hi", "[b] ann: yo"})

	if got := f.GetText(true); !strings.Contains(got, "ann: yo") {
		t.Errorf("unexpected text %q", got)
	}
	if len(f.Lines()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(f.Lines()))
	}
	f.SetStatus("disconnected")
	if !strings.Contains(f.Title(), "disconnected") {
		t.Errorf("expected status in title, got %q", f.Title())
	}
}

func TestCmdBarHistory(t *testing.T) {
	var got []string
	c := NewCmdBar([]string{"orders", "tasks"})
	c.SetCommandFn(func(s string) { got = append(got, s) })

	for _, cmd := range []string{"o", "t"} {
		c.Activate(ModeCommand)
		typeText(c, cmd)
		c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	}

	c.Activate(ModeCommand)
	up := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	c.keyboard(up)
	if c.GetText() != "t" {
		t.Fatalf("expected last command, got %q", c.GetText())
	}
	c.keyboard(up)
	c.keyboard(up)
	if c.GetText() != "o" {
		t.Fatalf("expected oldest command, got %q", c.GetText())
	}
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if strings.Join(got, ",") != ":o,:t,:o" {
		t.Errorf("unexpected commands %v", got)
	}
}

func TestRenderCrumbs(t *testing.T) {
	got := renderCrumbs([]string{"orders", "Help Me"})
	if !strings.HasPrefix(got, "[gray::-] <orders>") {
		t.Errorf("unexpected first crumb %q", got)
	}
	if !strings.Contains(got, "[black:orange:b] <helpme>") {
		t.Errorf("expected the last crumb highlighted, got %q", got)
	}
	if renderCrumbs(nil) != "" {
		t.Error("expected no crumbs")
	}
}
