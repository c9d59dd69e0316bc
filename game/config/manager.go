package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/colorlines/colorlines/game/engine"
	"github.com/colorlines/colorlines/game/service"
	"github.com/colorlines/colorlines/storage"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// settingsKey is the key/value slot holding the server's default rules.
const settingsKey = "settings"

// Preset is a named ruleset stored as a JSON file in the config
// directory. The rule fields marshal inline next to the metadata.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	engine.Rules
}

// Manager handles rule preset loading and caching, plus the persisted
// default rules used for new sessions.
type Manager struct {
	configDir    string
	store        storage.Store
	defaultRules engine.Rules
	presets      map[string]*Preset
	mu           sync.RWMutex
}

// NewManager creates a configuration manager over configDir, creating the
// directory and seeding the bundled presets when it is empty. The default
// rules are restored from the store's settings key; corrupt or missing
// persisted settings degrade field by field to the package defaults.
func NewManager(configDir string, store storage.Store) (*Manager, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	m := &Manager{
		configDir: configDir,
		store:     store,
		presets:   make(map[string]*Preset),
	}

	if err := m.seedPresets(); err != nil {
		return nil, fmt.Errorf("failed to seed presets: %w", err)
	}
	m.loadDefaultRules()

	return m, nil
}

// LoadConfig loads a preset by name. Preset files are held to strict
// validation, unlike the tolerant settings slot: a broken file is an
// operator error worth surfacing.
func (m *Manager) LoadConfig(name string) (*Preset, error) {
	m.mu.RLock()
	if preset, exists := m.presets[name]; exists {
		m.mu.RUnlock()
		return preset, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if preset, exists := m.presets[name]; exists {
		return preset, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	if err := preset.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.presets[name] = &preset
	return &preset, nil
}

// LoadRules returns just the rule set of the named preset.
func (m *Manager) LoadRules(name string) (engine.Rules, error) {
	preset, err := m.LoadConfig(name)
	if err != nil {
		return engine.Rules{}, err
	}
	return preset.Rules, nil
}

// SavePreset wraps rules in preset metadata and stores them under name.
func (m *Manager) SavePreset(name, description string, rules engine.Rules) error {
	return m.SaveConfig(name, &Preset{
		Name:        name,
		Description: description,
		Rules:       rules,
	})
}

// ListConfigs returns information about every valid preset on disk.
// Invalid preset files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		preset, err := m.LoadConfig(name)
		if err != nil {
			continue
		}
		configs = append(configs, &service.ConfigInfo{
			Filename:      entry.Name(),
			ConfigID:      name,
			Name:          preset.Name,
			Description:   preset.Description,
			BoardSize:     preset.BoardSize,
			MinLine:       preset.MinLine,
			BallsPerRound: preset.BallsPerRound,
			Colors:        len(preset.Colors),
		})
	}
	return configs, nil
}

// GetDefault returns the rules used for new sessions.
func (m *Manager) GetDefault() engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultRules
}

// SetDefault validates rules, makes them the default for new sessions and
// persists them to the settings slot.
func (m *Manager) SetDefault(rules engine.Rules) error {
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRules = rules
	m.persistDefaultRules()
	return nil
}

// StoreDefault records already-applied rules as the new-session default
// without re-validating, used after a session applied a patch with
// per-field fallbacks.
func (m *Manager) StoreDefault(rules engine.Rules) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRules = rules.Sanitize()
	m.persistDefaultRules()
}

// RefreshCache drops cached presets and re-reads the default rules, so
// files edited on disk take effect.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets = make(map[string]*Preset)
	m.loadDefaultRules()
	return nil
}

// SaveConfig validates and writes a preset to disk, updating the cache.
func (m *Manager) SaveConfig(name string, preset *Preset) error {
	if preset == nil {
		return fmt.Errorf("%w: preset cannot be nil", ErrInvalidConfig)
	}
	if err := preset.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	m.mu.Lock()
	m.presets[strings.TrimSuffix(filename, ".json")] = preset
	m.mu.Unlock()
	return nil
}

// loadDefaultRules restores the default rules from the settings slot.
func (m *Manager) loadDefaultRules() {
	raw, ok := m.store.Get(settingsKey)
	if !ok {
		m.defaultRules = engine.DefaultRules()
		return
	}
	m.defaultRules = engine.ParseRules([]byte(raw))
}

// persistDefaultRules writes the default rules back to the settings slot.
// Callers hold the lock. Failures are logged, never raised to the game.
func (m *Manager) persistDefaultRules() {
	data, err := json.MarshalIndent(m.defaultRules, "", "  ")
	if err != nil {
		log.Printf("[CONFIG] failed to serialize settings: %v", err)
		return
	}
	if err := m.store.Set(settingsKey, string(data)); err != nil {
		log.Printf("[CONFIG] failed to persist settings: %v", err)
	}
}

// seedPresets writes the bundled presets when the directory has none, so
// a fresh install has something to list.
func (m *Manager) seedPresets() error {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}
	}

	for name, preset := range bundledPresets() {
		if err := m.SaveConfig(name, preset); err != nil {
			return err
		}
	}
	return nil
}

// bundledPresets are the rulesets shipped with the server.
func bundledPresets() map[string]*Preset {
	return map[string]*Preset{
		"classic": {
			Name:        "Classic",
			Description: "The traditional game: 9x9 board, seven colors, lines of five, three balls per round",
			Rules:       engine.DefaultRules(),
		},
		"compact": {
			Name:        "Compact",
			Description: "A quicker game on a 7x7 board with five colors and lines of four",
			Rules: engine.Rules{
				Colors:        []engine.Color{1, 2, 3, 4, 5},
				MinLine:       4,
				BoardSize:     7,
				BallsPerRound: 3,
			},
		},
		"grand": {
			Name:        "Grand",
			Description: "A long game on a 12x12 board with five balls per round",
			Rules: engine.Rules{
				Colors:        []engine.Color{1, 2, 3, 4, 5, 6, 7},
				MinLine:       5,
				BoardSize:     12,
				BallsPerRound: 5,
			},
		},
	}
}
