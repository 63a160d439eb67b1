package systems

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/quasilyte/gdata"
)

// SavedSettings represents the window settings stored on disk
type SavedSettings struct {
	ResolutionIndex int  `json:"resolutionIndex"`
	Fullscreen      bool `json:"fullscreen"`
}

const settingsItem = "settings"

// itemStore is the subset of *gdata.Manager used for persistence.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// PrefStore implements game.Store. Values are written through to gdata when
// persistence is available and always kept in memory, so preferences still
// work for the session when the disk cannot be used.
type PrefStore struct {
	items itemStore

	mu  sync.Mutex
	mem map[string]string
}

// NewPrefStore creates a store backed by items. A nil items keeps values in
// memory only.
func NewPrefStore(items itemStore) *PrefStore {
	return &PrefStore{items: items, mem: make(map[string]string)}
}

// OpenPrefs initializes gdata under appName. On failure it logs a warning and
// returns a memory-only store together with the error.
func OpenPrefs(appName string) (*PrefStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return NewPrefStore(nil), err
	}
	return NewPrefStore(m), nil
}

func (s *PrefStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.mem[key]; ok {
		return v, true
	}
	if s.items == nil {
		return "", false
	}

	data, err := s.items.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", key, err)
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	s.mem[key] = string(data)
	return string(data), true
}

func (s *PrefStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem[key] = value
	if s.items == nil {
		return nil
	}
	return s.items.SaveItem(key, []byte(value))
}

// LoadSettings loads window settings. It returns nil when nothing was saved
// or the saved data cannot be parsed.
func LoadSettings(s *PrefStore) *SavedSettings {
	raw, ok := s.Get(settingsItem)
	if !ok {
		return nil
	}

	var settings SavedSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil
	}
	return &settings
}

// SaveSettings saves window settings.
func SaveSettings(s *PrefStore, settings SavedSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.Set(settingsItem, string(data)); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}
