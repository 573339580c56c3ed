package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// FeedList shows the most recent lines of a live feed, newest last.
type FeedList struct {
	*tview.TextView

	name    string
	actions *KeyActions
	lines   []string
	status  string
	title   string
	mx      sync.RWMutex
}

// NewFeedList returns a new feed list.
func NewFeedList(name string) *FeedList {
	f := &FeedList{
		TextView: tview.NewTextView(),
		name:     name,
		actions:  NewKeyActions(),
	}
	f.SetBorder(true)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBorderColor(tcell.ColorDodgerBlue)
	f.SetBackgroundColor(tcell.ColorDefault)
	f.SetDynamicColors(true)
	f.SetWrap(true)
	f.SetInputCapture(f.actions.Handle)
	f.render()

	return f
}

// Name returns the feed name.
func (f *FeedList) Name() string {
	return f.name
}

// Actions returns the key actions.
func (f *FeedList) Actions() *KeyActions {
	return f.actions
}

// Hints returns menu hints for key bindings.
func (f *FeedList) Hints() MenuHints {
	return f.actions.Hints()
}

// Lines returns the displayed lines.
func (f *FeedList) Lines() []string {
	f.mx.RLock()
	defer f.mx.RUnlock()

	return append([]string(nil), f.lines...)
}

// SetLines replaces the displayed lines.
func (f *FeedList) SetLines(ll []string) {
	f.mx.Lock()
	f.lines = append(f.lines[:0], ll...)
	f.mx.Unlock()

	f.render()
}

// SetStatus shows a status next to the title. An empty status clears it.
func (f *FeedList) SetStatus(s string) {
	f.mx.Lock()
	f.status = s
	f.mx.Unlock()

	f.render()
}

// Title returns the current title.
func (f *FeedList) Title() string {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.title
}

func (f *FeedList) render() {
	f.mx.RLock()
	lines, status := f.lines, f.status
	f.mx.RUnlock()

	title := fmt.Sprintf(" [aqua::b]%s[white::-][[fuchsia::b]%d[white::-]] ", f.name, len(lines))
	if status != "" {
		title += fmt.Sprintf("[red::-]%s ", tview.Escape(status))
	}
	f.mx.Lock()
	f.title = title
	f.mx.Unlock()
	f.SetTitle(title)

	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = tview.Escape(l)
	}
	f.TextView.SetText(strings.Join(escaped, "\n"))
	f.ScrollToEnd()
}
