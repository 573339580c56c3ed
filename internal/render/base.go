package render

import (
	"time"

	"github.com/acme/acmeui/internal/model1"
)

// Base provides a base renderer implementation
type Base struct {
	clock func() time.Time
}

// SetClock overrides the clock used for relative time columns.
func (b *Base) SetClock(f func() time.Time) {
	b.clock = f
}

// Now returns the render time.
func (b *Base) Now() time.Time {
	if b.clock == nil {
		return time.Now()
	}
	return b.clock()
}

// ColorerFunc returns the default colorer
func (*Base) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}
