package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/acme/acmeui/internal/config/data"
)

// Default values
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultView       = "orders"
	DefaultPageSize   = 50
	MaxPageSize       = 1000
	DefaultFeedWindow = 11
)

// Acme represents the acmeui global configuration.
type Acme struct {
	RefreshRate    float32        `yaml:"refreshRate"`
	APITimeout     string         `yaml:"apiTimeout"`
	PageSize       int            `yaml:"pageSize"`
	FeedWindow     int            `yaml:"feedWindow"`
	DefaultView    string         `yaml:"defaultView"`
	Username       string         `yaml:"username"`
	CandidateGroup string         `yaml:"candidateGroup"`
	UI             data.UI        `yaml:"ui"`
	Logger         data.Logger    `yaml:"logger"`
	Services       data.Services  `yaml:"services"`
	Documents      data.Documents `yaml:"documents"`

	mx sync.RWMutex
}

// NewAcme creates an Acme with default settings.
func NewAcme() *Acme {
	return &Acme{
		RefreshRate: DefaultRefreshRate,
		APITimeout:  DefaultAPITimeout.String(),
		PageSize:    DefaultPageSize,
		FeedWindow:  DefaultFeedWindow,
		DefaultView: DefaultView,
		Logger:      data.Logger{Level: DefaultLogLevel},
		Services: data.Services{
			RateLimit: data.DefaultRateLimit,
			Burst:     data.DefaultBurst,
		},
	}
}

// Validate ensures Acme has valid settings.
func (a *Acme) Validate() {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.RefreshRate <= 0 {
		a.RefreshRate = DefaultRefreshRate
	}
	if a.APITimeout == "" {
		a.APITimeout = DefaultAPITimeout.String()
	}
	if a.PageSize <= 0 {
		a.PageSize = DefaultPageSize
	}
	a.PageSize = min(a.PageSize, MaxPageSize)
	if a.FeedWindow <= 0 {
		a.FeedWindow = DefaultFeedWindow
	}
	if a.DefaultView == "" {
		a.DefaultView = DefaultView
	}
	if a.Logger.Level == "" {
		a.Logger.Level = DefaultLogLevel
	}
	if a.Services.RateLimit < 0 {
		a.Services.RateLimit = 0
	}
	if a.Services.Burst <= 0 {
		a.Services.Burst = data.DefaultBurst
	}
}

// Override applies CLI flag overrides to the configuration.
func (a *Acme) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		a.RefreshRate = *flags.RefreshRate
	}
	if flags.PageSize != nil && *flags.PageSize > 0 {
		a.PageSize = *flags.PageSize
	}
	if IsStringSet(flags.Command) {
		a.DefaultView = *flags.Command
	}
	if IsStringSet(flags.LogLevel) {
		a.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.Profile) {
		a.Documents.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		a.Documents.Region = *flags.Region
	}
	if IsBoolSet(flags.Headless) {
		a.UI.Headless = true
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (a *Acme) GetAPITimeout() (time.Duration, error) {
	a.mx.RLock()
	timeoutStr := a.APITimeout
	a.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// GetRefreshRate returns the refresh interval.
func (a *Acme) GetRefreshRate() time.Duration {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return time.Duration(float64(a.RefreshRate) * float64(time.Second))
}
