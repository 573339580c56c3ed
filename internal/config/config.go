package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/acme/acmeui/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Acme *Acme `yaml:"acmeui"`
	mx   sync.RWMutex
}

// NewConfig creates a new Config with default settings.
func NewConfig() *Config {
	return &Config{
		Acme: NewAcme(),
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Acme == nil {
		c.Acme = NewAcme()
	}
	c.Acme.Validate()

	return nil
}

// Save saves the configuration to path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags on top of the loaded file.
// Precedence: CLI flag > config file > default.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Acme == nil {
		return fmt.Errorf("config.Acme is nil")
	}
	c.Acme.Override(flags)
	c.Acme.Validate()

	if _, err := c.Acme.GetAPITimeout(); err != nil {
		return err
	}
	return nil
}
