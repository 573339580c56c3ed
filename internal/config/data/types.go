// Package data provides configuration data types for the acmeui application.
package data

// Flags represents CLI command-line flags for the acmeui application.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Headless    *bool    // Run in headless mode (no TUI)
	Command     *string  // View to open on start
	PageSize    *int     // Rows per page on paged views
	Profile     *string  // AWS profile backing the document repository
	Region      *string  // AWS region backing the document repository
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Headless    bool `yaml:"headless"`
	Logoless    bool `yaml:"logoless"`
	Crumbsless  bool `yaml:"crumbsless"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Services locates the remote GraphQL and websocket endpoints.
type Services struct {
	Order     string  `yaml:"order"`
	Audit     string  `yaml:"audit"`
	BPM       string  `yaml:"bpm"`
	Chat      string  `yaml:"chat"`
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

// Documents locates the document repository bucket.
type Documents struct {
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
}

// Service rate limit defaults.
const (
	DefaultRateLimit = 10.0
	DefaultBurst     = 5
)

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Headless:    new(bool),
		Command:     new(string),
		PageSize:    new(int),
		Profile:     new(string),
		Region:      new(string),
	}
}
