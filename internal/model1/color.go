package model1

import "github.com/gdamore/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// PendingColor flags rows waiting on someone.
	PendingColor tcell.Color = tcell.ColorDarkCyan

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// StaleColor row for entries older than a day
	StaleColor tcell.Color = tcell.ColorGray
)

// DefaultColorer colors rows by their last change.
func DefaultColorer(_ Header, re *RowEvent) tcell.Color {
	switch re.Kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	default:
		return StdColor
	}
}
