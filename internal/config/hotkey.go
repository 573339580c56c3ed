package config

import (
	"errors"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/acme/acmeui/internal/config/data"
)

// HotKey binds a keyboard shortcut to a view command.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
}

func (h HotKey) valid() bool {
	return strings.TrimSpace(h.ShortCut) != "" && strings.TrimSpace(h.Command) != ""
}

// HotKeys holds the user shortcuts keyed by name.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`
	mx     sync.RWMutex
}

// NewHotKeys creates an empty HotKeys configuration.
func NewHotKeys() *HotKeys {
	return &HotKeys{HotKey: make(map[string]HotKey)}
}

// Load reads the hotkeys file from the config dir.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom replaces the hotkeys with the ones at path. A missing file leaves
// none. Entries without a shortcut or a command are dropped.
func (h *HotKeys) LoadFrom(path string) error {
	var loaded struct {
		HotKey map[string]HotKey `yaml:"hotKeys"`
	}
	err := data.LoadYAML(path, &loaded)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	hh := make(map[string]HotKey, len(loaded.HotKey))
	for name, hk := range loaded.HotKey {
		if hk.valid() {
			hh[name] = hk
		}
	}

	h.mx.Lock()
	h.HotKey = hh
	h.mx.Unlock()

	return nil
}

// Get returns a hotkey by name, or nil if not found.
func (h *HotKeys) Get(name string) *HotKey {
	h.mx.RLock()
	defer h.mx.RUnlock()

	if hk, ok := h.HotKey[name]; ok {
		return &hk
	}
	return nil
}

// Match returns the hotkey bound to a tcell key name such as "Shift-C".
func (h *HotKeys) Match(shortcut string) (HotKey, bool) {
	h.mx.RLock()
	defer h.mx.RUnlock()

	for _, name := range slices.Sorted(maps.Keys(h.HotKey)) {
		if hk := h.HotKey[name]; hk.ShortCut == shortcut {
			return hk, true
		}
	}
	return HotKey{}, false
}

// Set sets a hotkey by name.
func (h *HotKeys) Set(name string, hk HotKey) {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.HotKey[name] = hk
}

// Names returns the sorted hotkey names.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	return slices.Sorted(maps.Keys(h.HotKey))
}
