package data

import "sync"

// ViewSort is a persisted sort column for a view.
type ViewSort struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc"`
}

// View remembers the last active view and per view sorting across sessions.
type View struct {
	Active string              `yaml:"active"`
	Sorts  map[string]ViewSort `yaml:"sorts"`
	mx     sync.RWMutex        `yaml:"-"`
}

// NewView creates a View with default settings
func NewView(active string) *View {
	return &View{
		Active: active,
		Sorts:  make(map[string]ViewSort),
	}
}

// Validate ensures the View has valid settings
func (v *View) Validate(fallback string) {
	v.mx.Lock()
	defer v.mx.Unlock()

	if v.Active == "" {
		v.Active = fallback
	}
	if v.Sorts == nil {
		v.Sorts = make(map[string]ViewSort)
	}
}

// SetActive records the active view.
func (v *View) SetActive(name string) {
	v.mx.Lock()
	defer v.mx.Unlock()
	v.Active = name
}

// ActiveView returns the last active view.
func (v *View) ActiveView() string {
	v.mx.RLock()
	defer v.mx.RUnlock()
	return v.Active
}

// Sort returns the persisted sort of a view.
func (v *View) Sort(view string) (ViewSort, bool) {
	v.mx.RLock()
	defer v.mx.RUnlock()

	s, ok := v.Sorts[view]
	return s, ok
}

// SetSort records the sort of a view.
func (v *View) SetSort(view string, s ViewSort) {
	v.mx.Lock()
	defer v.mx.Unlock()

	if v.Sorts == nil {
		v.Sorts = make(map[string]ViewSort)
	}
	v.Sorts[view] = s
}

// Save writes the view state to path.
func (v *View) Save(path string) error {
	v.mx.RLock()
	defer v.mx.RUnlock()

	return SaveYAML(path, v)
}

// Load reads the view state from path.
func (v *View) Load(path string) error {
	v.mx.Lock()
	defer v.mx.Unlock()

	return MustLoadYAML(path, v)
}
