// Package registry provides a global registry of device profiles.
// A profile names a grid size and base tick interval. Built-in profiles
// register themselves in init(); configuration files may add or replace
// profiles at startup.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
)

// DefaultProfile is used when no profile is requested.
const DefaultProfile = "phone"

// ErrUnknownProfile is returned by Get for unregistered names.
var ErrUnknownProfile = errors.New("registry: unknown profile")

// ProfileInfo contains a profile name with its settings.
type ProfileInfo struct {
	Name     string
	Settings core.Settings
}

var (
	profiles = make(map[string]core.Settings)
	mu       sync.RWMutex
)

func init() {
	for _, p := range config.DefaultConfig().Profiles {
		Register(p.Name, settingsOf(p))
	}
}

// Register adds a profile to the registry.
// Panics if a profile with the same name is already registered.
func Register(name string, s core.Settings) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := profiles[name]; exists {
		panic(fmt.Sprintf("registry: profile %q already registered", name))
	}
	profiles[name] = s
}

// Define adds or replaces a profile after validating it.
func Define(name string, s core.Settings) error {
	if name == "" {
		return fmt.Errorf("registry: empty profile name")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("registry: profile %q: %w", name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	profiles[name] = s
	return nil
}

// LoadConfig defines every profile listed in cfg.
func LoadConfig(cfg config.Config) error {
	for _, p := range cfg.Profiles {
		if err := Define(p.Name, settingsOf(p)); err != nil {
			return err
		}
	}
	return nil
}

// List returns all registered profiles, smallest grid first.
func List() []ProfileInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ProfileInfo, 0, len(profiles))
	for name, s := range profiles {
		result = append(result, ProfileInfo{Name: name, Settings: s})
	}

	sort.Slice(result, func(i, j int) bool {
		ci, cj := result[i].Settings.Cells(), result[j].Settings.Cells()
		if ci != cj {
			return ci < cj
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns the settings for a profile.
func Get(name string) (core.Settings, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := profiles[name]
	if !ok {
		return core.Settings{}, fmt.Errorf("%w %q", ErrUnknownProfile, name)
	}
	return s, nil
}

// Exists checks if a profile with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := profiles[name]
	return ok
}

func settingsOf(p config.ProfileConfig) core.Settings {
	return core.Settings{
		GridWidth:    p.GridWidth,
		GridHeight:   p.GridHeight,
		TickInterval: p.TickInterval,
	}
}
