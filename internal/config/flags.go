package config

import (
	"github.com/acme/acmeui/internal/config/data"
)

const (
	// DefaultRefreshRate is the list reload interval in seconds.
	DefaultRefreshRate = 5.0

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
)

// NewFlags returns CLI flags holding their defaults. Blank strings and zero
// numbers mean "not set" and leave the config file value alone.
func NewFlags() *data.Flags {
	return &data.Flags{
		RefreshRate: ptr[float32](DefaultRefreshRate),
		LogLevel:    ptr(DefaultLogLevel),
		LogFile:     ptr(AppLogFile),
		Headless:    ptr(false),
		Command:     ptr(""),
		PageSize:    ptr(0),
		Profile:     ptr(""),
		Region:      ptr(""),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
