// Package settings persists the user's device settings as YAML.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid settings")

type Settings struct {
	Language              string `yaml:"language" validate:"required,bcp47_language_tag"`
	HideBatteryPercentage bool   `yaml:"hide_battery_percentage"`
	FrontButtonLayout     string `yaml:"front_button_layout" validate:"oneof=back-confirm-left-right left-right-back-confirm"`
	DeviceName            string `yaml:"device_name" validate:"required,max=24,printascii"`
}

func Defaults() Settings {
	return Settings{
		Language:          "en",
		FrontButtonLayout: "back-confirm-left-right",
		DeviceName:        "inkpoint",
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks s and names the first offending field.
func Validate(s Settings) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return fmt.Errorf("%w: %s failed '%s'", ErrInvalid, strings.ToLower(ves[0].Field()), ves[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// Store holds the current settings and writes every change back to its file.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings Settings
}

// Open loads path. A missing file yields the defaults; it is created on the first Update.
func Open(path string) (*Store, error) {
	store := &Store{path: path, settings: Defaults()}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := Validate(loaded); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	store.settings = loaded
	return store, nil
}

// NewMemoryStore returns a store that never touches the filesystem.
func NewMemoryStore(initial Settings) *Store {
	return &Store{settings: initial}
}

func (store *Store) Snapshot() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// Update applies fn to a copy of the settings, validates and saves the result.
// On error nothing changes.
func (store *Store) Update(fn func(*Settings)) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := store.settings
	fn(&next)
	if err := Validate(next); err != nil {
		return err
	}
	if err := store.save(next); err != nil {
		return err
	}
	store.settings = next
	return nil
}

func (store *Store) save(s Settings) error {
	if store.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// BatteryPercentageVisible reports whether the header shows the charge in percent.
func (store *Store) BatteryPercentageVisible() bool {
	return !store.Snapshot().HideBatteryPercentage
}
