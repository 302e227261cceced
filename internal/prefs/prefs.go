// Package prefs persists the client-side selections that survive restarts:
// the active theme and the active currency.
package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"

	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

type persisted struct {
	Theme    string `koanf:"theme"`
	Currency string `koanf:"currency"`
}

// Store holds the persisted selections. Load never fails: a missing or
// unreadable file yields the defaults (light, USD), and unknown persisted
// identifiers fall back the same way.
type Store struct {
	mu       sync.RWMutex
	path     string
	theme    model.Theme
	currency currency.Code
}

// Load reads the preferences file at path, falling back to defaults when it
// is absent or malformed.
func Load(path string) *Store {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(persisted{
		Theme:    string(model.ThemeLight),
		Currency: string(currency.USD),
	}, "koanf"), nil); err != nil {
		log.Errorf("error loading preference defaults: %v", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no preferences file at %s, using defaults", path)
		} else {
			log.Warnf("could not read preferences from %s: %v", path, err)
		}
	}

	var p persisted
	if err := k.Unmarshal("", &p); err != nil {
		log.Warnf("could not parse preferences: %v", err)
		p = persisted{Theme: string(model.ThemeLight), Currency: string(currency.USD)}
	}

	return &Store{
		path:     path,
		theme:    model.ParseTheme(p.Theme),
		currency: currency.Parse(p.Currency),
	}
}

// Theme returns the active theme.
func (s *Store) Theme() model.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Currency returns the active currency.
func (s *Store) Currency() currency.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// SetTheme records and persists a new active theme.
func (s *Store) SetTheme(t model.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = model.ParseTheme(string(t))
	return s.save()
}

// SetCurrency records and persists a new active currency.
func (s *Store) SetCurrency(c currency.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = currency.Parse(string(c))
	return s.save()
}

func (s *Store) save() error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(persisted{
		Theme:    string(s.theme),
		Currency: string(s.currency),
	}, "koanf"), nil); err != nil {
		return err
	}

	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, out, 0o600)
}
