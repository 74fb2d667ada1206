// Package settings stores the player's music and sound toggles.
// Values are YAML-encoded and persisted through gdata; a Manager without a
// gdata backend keeps them in memory only.
package settings

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Setting names understood by Enabled, Set and Toggle.
const (
	Music = "music"
	Sound = "sound"
)

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// AppName is the gdata application name used by Open.
const AppName = "airplane"

// Reader answers whether a named toggle is on.
type Reader interface {
	Enabled(name string) bool
}

// Values is the persisted form of the settings.
type Values struct {
	MusicEnabled bool `yaml:"music_enabled"`
	SoundEnabled bool `yaml:"sound_enabled"`
}

// Defaults returns the first-run settings: everything on.
func Defaults() Values {
	return Values{MusicEnabled: true, SoundEnabled: true}
}

// Manager loads, holds and saves settings. Safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	store  *gdata.Manager // nil means memory-only
	values Values
	logger *log.Logger
}

var _ Reader = (*Manager)(nil)

// Open creates a gdata-backed manager for AppName.
func Open(logger *log.Logger) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("settings: cannot open storage: %w", err)
	}
	return New(store, logger), nil
}

// New creates a manager over store, which may be nil. Stored settings are
// loaded immediately; a failed load leaves the defaults in place.
func New(store *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		store:  store,
		values: Defaults(),
		logger: logger,
	}
	if err := m.Load(); err != nil {
		m.logger.Warn("using default settings", "error", err)
	}
	return m
}

// Load reads the stored settings. Missing data yields the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = Defaults()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: cannot load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: cannot decode: %w", err)
	}
	m.values = loaded
	return nil
}

// Save persists the current settings. A memory-only manager does nothing.
func (m *Manager) Save() error {
	m.mu.RLock()
	values := m.values
	m.mu.RUnlock()

	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	m.logger.Debug("settings saved", "music", values.MusicEnabled, "sound", values.SoundEnabled)
	return nil
}

// Values returns a copy of the current settings.
func (m *Manager) Values() Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values
}

// Enabled reports whether the named toggle is on. Unknown names read false.
func (m *Manager) Enabled(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch name {
	case Music:
		return m.values.MusicEnabled
	case Sound:
		return m.values.SoundEnabled
	default:
		return false
	}
}

// Set changes a toggle in memory. Call Save to persist it.
func (m *Manager) Set(name string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case Music:
		m.values.MusicEnabled = on
	case Sound:
		m.values.SoundEnabled = on
	default:
		return fmt.Errorf("settings: unknown setting %q", name)
	}
	return nil
}

// Toggle flips a toggle, saves, and returns the new value.
// A failed save is logged; the in-memory value still changes.
func (m *Manager) Toggle(name string) bool {
	on := !m.Enabled(name)
	if err := m.Set(name, on); err != nil {
		m.logger.Warn("toggle ignored", "error", err)
		return false
	}
	if err := m.Save(); err != nil {
		m.logger.Error("could not save settings", "error", err)
	}
	return on
}
