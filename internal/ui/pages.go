package ui

import (
	"sync"

	"github.com/derailed/tview"
)

// Pages is a stack of components backed by tview pages.
type Pages struct {
	*tview.Pages

	stack     []Component
	listeners []StackListener
	mx        sync.RWMutex
}

// NewPages returns a new pages manager
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// AddListener registers a stack listener.
func (p *Pages) AddListener(l StackListener) {
	p.mx.Lock()
	p.listeners = append(p.listeners, l)
	p.mx.Unlock()

	if top := p.Top(); top != nil {
		l.StackTop(top)
	}
}

// Push stops the current top and shows c.
func (p *Pages) Push(c Component) {
	if top := p.Top(); top != nil {
		top.Stop()
	}

	p.mx.Lock()
	p.stack = append(p.stack, c)
	p.mx.Unlock()

	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
	for _, l := range p.snapshot() {
		l.StackPushed(c)
	}
}

// Pop stops and removes the top component. The root component is never popped.
func (p *Pages) Pop() (Component, bool) {
	p.mx.Lock()
	if len(p.stack) < 2 {
		p.mx.Unlock()
		return nil, false
	}
	old := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	top := p.stack[len(p.stack)-1]
	p.mx.Unlock()

	old.Stop()
	p.RemovePage(old.Name())
	p.SwitchToPage(top.Name())
	top.Start()
	for _, l := range p.snapshot() {
		l.StackPopped(old, top)
	}

	return old, true
}

// Replace clears the stack and shows c.
func (p *Pages) Replace(c Component) {
	p.mx.Lock()
	old := p.stack
	p.stack = nil
	p.mx.Unlock()

	for _, o := range old {
		o.Stop()
		p.RemovePage(o.Name())
	}
	p.Push(c)
}

// Top returns the top most component or nil if the stack is empty.
func (p *Pages) Top() Component {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// StackSize returns the stack depth
func (p *Pages) StackSize() int {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return len(p.stack)
}

// Flatten returns the component names bottom to top.
func (p *Pages) Flatten() []string {
	p.mx.RLock()
	defer p.mx.RUnlock()

	ss := make([]string, len(p.stack))
	for i, c := range p.stack {
		ss[i] = c.Name()
	}
	return ss
}

func (p *Pages) snapshot() []StackListener {
	p.mx.RLock()
	defer p.mx.RUnlock()

	ll := make([]StackListener, len(p.listeners))
	copy(ll, p.listeners)
	return ll
}
