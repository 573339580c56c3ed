// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of acmeui

package ui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const maxHistory = 20

// CmdBar is the bordered input bar at the top of the app. It switches views,
// filters the active table and composes chat messages. Commands autocomplete
// with ghost text and up/down recall earlier entries of the same mode.
type CmdBar struct {
	*tview.TextView

	mode       IndicatorMode
	active     bool
	text       []rune
	filterText string
	suggest    suggester
	history    map[IndicatorMode]*history

	cmdFn    func(string)
	filterFn func(string)
	sendFn   func(string)
	cancelFn func()
	activeFn func(bool)

	mx sync.RWMutex
}

// NewCmdBar creates a new command bar suggesting commands.
func NewCmdBar(commands []string) *CmdBar {
	c := CmdBar{
		TextView: tview.NewTextView(),
		mode:     ModeNormal,
		suggest:  newSuggester(commands),
		history: map[IndicatorMode]*history{
			ModeCommand: {},
			ModeSend:    {},
		},
	}
	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDodgerBlue)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return &c
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyEnter:
		c.execute()
	case tcell.KeyEsc:
		c.cancel()
	case tcell.KeyTab, tcell.KeyRight:
		c.edit(func(text []rune) []rune {
			if s := c.suggest.current(); s != "" {
				return []rune(s)
			}
			return text
		})
	case tcell.KeyUp:
		c.cycle(-1)
	case tcell.KeyDown:
		c.cycle(1)
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.edit(func(text []rune) []rune {
			if len(text) == 0 {
				return text
			}
			return text[:len(text)-1]
		})
	case tcell.KeyCtrlU, tcell.KeyCtrlW:
		c.edit(func([]rune) []rune { return nil })
	case tcell.KeyRune:
		c.edit(func(text []rune) []rune { return append(text, evt.Rune()) })
	default:
		return evt
	}

	return nil
}

// edit applies fn to the input then refreshes suggestions and live filters.
func (c *CmdBar) edit(fn func([]rune) []rune) {
	c.mx.Lock()
	c.text = fn(c.text)
	text, mode := string(c.text), c.mode
	if mode == ModeCommand {
		c.suggest.update(text)
	} else {
		c.suggest.clear()
	}
	c.mx.Unlock()

	c.render()
	if mode == ModeFilter && c.filterFn != nil {
		c.filterFn(text)
	}
}

// cycle walks suggestions when there are some, the mode history otherwise.
func (c *CmdBar) cycle(step int) {
	c.mx.Lock()
	if !c.suggest.step(step) {
		if h, ok := c.history[c.mode]; ok {
			if s, ok := h.recall(step); ok {
				c.text = []rune(s)
			}
		}
	}
	c.mx.Unlock()
	c.render()
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text, ghost, mode := string(c.text), c.suggest.current(), c.mode
	c.mx.RUnlock()

	c.Clear()
	if rest, ok := strings.CutPrefix(ghost, text); ok && rest != "" {
		fmt.Fprintf(c.TextView, "%s%s [::b]%s[gray::]%s[-::]", mode.Icon(), mode.Prefix(), tview.Escape(text), rest)
		return
	}
	fmt.Fprintf(c.TextView, "%s%s [::b]%s", mode.Icon(), mode.Prefix(), tview.Escape(text))
}

// GetText returns the current input text.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return string(c.text)
}

// Activate enters the given input mode with a blank line.
func (c *CmdBar) Activate(mode IndicatorMode) {
	c.setActive(true, mode)
}

// Deactivate exits input mode.
func (c *CmdBar) Deactivate() {
	c.setActive(false, ModeNormal)
}

func (c *CmdBar) setActive(active bool, mode IndicatorMode) {
	c.mx.Lock()
	c.active, c.mode, c.text = active, mode, nil
	c.suggest.clear()
	for _, h := range c.history {
		h.rewind()
	}
	c.mx.Unlock()

	c.render()
	if c.activeFn != nil {
		c.activeFn(active)
	}
}

func (c *CmdBar) execute() {
	text, mode := c.GetText(), c.Mode()

	switch mode {
	case ModeCommand:
		if text != "" && c.cmdFn != nil {
			c.remember(mode, text)
			c.cmdFn(":" + text)
		}
	case ModeFilter:
		c.mx.Lock()
		c.filterText = text
		c.mx.Unlock()
	case ModeSend:
		if strings.TrimSpace(text) != "" && c.sendFn != nil {
			c.remember(mode, text)
			c.sendFn(text)
		}
	}

	c.Deactivate()
}

func (c *CmdBar) remember(mode IndicatorMode, text string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if h, ok := c.history[mode]; ok {
		h.push(text)
	}
}

func (c *CmdBar) cancel() {
	if c.Mode() == ModeFilter && c.cancelFn != nil {
		c.cancelFn()
	}
	c.Deactivate()
}

// IsActive returns whether the command bar is accepting input.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.active
}

// Mode returns the current mode.
func (c *CmdBar) Mode() IndicatorMode {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.mode
}

// SetCommandFn sets the callback for command execution.
func (c *CmdBar) SetCommandFn(fn func(string)) {
	c.cmdFn = fn
}

// SetFilterFn sets the callback for filter text changes.
func (c *CmdBar) SetFilterFn(fn func(string)) {
	c.filterFn = fn
}

// SetSendFn sets the callback posting a composed chat message.
func (c *CmdBar) SetSendFn(fn func(string)) {
	c.sendFn = fn
}

// SetCancelFn sets the callback for when filter is cancelled.
func (c *CmdBar) SetCancelFn(fn func()) {
	c.cancelFn = fn
}

// SetActiveFn sets the callback for when active state changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) {
	c.activeFn = fn
}

// GetFilterText returns the confirmed filter text.
func (c *CmdBar) GetFilterText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.filterText
}

// ClearFilter drops the confirmed filter.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filterText = ""
	c.mx.Unlock()

	if c.filterFn != nil {
		c.filterFn("")
	}
}

// suggester completes command prefixes.
type suggester struct {
	commands []string
	matches  []string
	idx      int
}

func newSuggester(commands []string) suggester {
	cmds := slices.Clone(commands)
	slices.Sort(cmds)

	return suggester{commands: slices.Compact(cmds)}
}

func (s *suggester) update(prefix string) {
	s.clear()
	if prefix == "" {
		return
	}
	prefix = strings.ToLower(prefix)
	for _, cmd := range s.commands {
		if strings.HasPrefix(cmd, prefix) {
			s.matches = append(s.matches, cmd)
		}
	}
}

func (s *suggester) current() string {
	if len(s.matches) == 0 {
		return ""
	}
	return s.matches[s.idx]
}

func (s *suggester) step(n int) bool {
	if len(s.matches) == 0 {
		return false
	}
	s.idx = (s.idx + n + len(s.matches)) % len(s.matches)
	return true
}

func (s *suggester) clear() {
	s.matches, s.idx = nil, 0
}

// history keeps the most recent entries, newest last.
type history struct {
	entries []string
	cursor  int
}

func (h *history) push(s string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == s {
		h.rewind()
		return
	}
	h.entries = append(h.entries, s)
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
	h.rewind()
}

// recall moves the cursor by step, up being older.
func (h *history) recall(step int) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	h.cursor = min(max(h.cursor+step, 0), len(h.entries)-1)
	return h.entries[h.cursor], true
}

func (h *history) rewind() {
	h.cursor = len(h.entries)
}
