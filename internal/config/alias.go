package config

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/acme/acmeui/internal/config/data"
)

// View names addressable from the command bar.
const (
	OrdersView        = "orders"
	NotificationsView = "notifications"
	TasksView         = "tasks"
	ChatView          = "chat"
	DocumentsView     = "documents"
	HelpView          = "help"
)

// Aliases maps command bar shortcuts to view names.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex
}

// DefaultAliases are the built-in view shortcuts.
var DefaultAliases = map[string]string{
	"o":     OrdersView,
	"ord":   OrdersView,
	"n":     NotificationsView,
	"notif": NotificationsView,
	"t":     TasksView,
	"c":     ChatView,
	"d":     DocumentsView,
	"docs":  DocumentsView,
	"?":     HelpView,
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := &Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return a
}

// Load loads aliases from the default config file.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom merges aliases from path. File entries win over defaults.
func (a *Aliases) LoadFrom(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded struct {
		Alias map[string]string `yaml:"aliases"`
	}
	if err := data.LoadYAML(path, &loaded); err != nil {
		return err
	}

	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range loaded.Alias {
		a.Alias[strings.ToLower(k)] = v
	}

	return nil
}

// SaveTo saves aliases to path.
func (a *Aliases) SaveTo(path string) error {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return data.SaveYAML(path, a)
}

// Get resolves an alias to its view name, or returns the input unchanged.
func (a *Aliases) Get(alias string) string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	alias = strings.ToLower(strings.TrimSpace(alias))
	if view, ok := a.Alias[alias]; ok {
		return view
	}
	return alias
}

// Set sets an alias.
func (a *Aliases) Set(alias, view string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[strings.ToLower(alias)] = view
}

// Names returns all known aliases and view names, sorted.
func (a *Aliases) Names() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	seen := make(map[string]struct{}, len(a.Alias)*2)
	for k, v := range a.Alias {
		seen[k] = struct{}{}
		seen[v] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
