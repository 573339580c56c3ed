package model1

import (
	"github.com/gdamore/tcell/v2"
)

// ResEvent represents a row event type. Kinds are bit flags so they can be
// counted as a mask.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
)

// DecoratorFunc decorates a cell.
type DecoratorFunc func(string) string

// ColorerFunc represents a row colorer
type ColorerFunc func(h Header, re *RowEvent) tcell.Color

// Renderer turns a service entity into a table row.
type Renderer interface {
	// Header returns the columns this renderer fills.
	Header() Header

	// Render fills row from o.
	Render(o any, row *Row) error

	// ColorerFunc returns the row colorer.
	ColorerFunc() ColorerFunc
}
