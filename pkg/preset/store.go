package preset

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage path constants.
const storeObject = "presets"

// Store persists preset documents in the platform's application data
// directory through gdata, keyed by preset name.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens (creating if needed) the preset store for the given
// application name.
func OpenStore(appName string) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preset store: %w", err)
	}
	return &Store{manager: manager}, nil
}

// NewStore wraps an existing gdata manager.
func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// Exists reports whether a preset with the given name has been saved.
func (s *Store) Exists(name string) bool {
	return s.manager.ObjectPropExists(storeObject, name)
}

// Save serializes the document to YAML and stores it under name,
// overwriting any previous version.
func (s *Store) Save(name string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal preset %q: %w", name, err)
	}
	if err := s.manager.SaveObjectProp(storeObject, name, data); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	log.Printf("[Preset] Saved preset %q", name)
	return nil
}

// Load reads and parses the named preset.
func (s *Store) Load(name string) (*Document, error) {
	if !s.Exists(name) {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	data, err := s.manager.LoadObjectProp(storeObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("stored preset %q is malformed: %w", name, err)
	}
	return doc, nil
}
