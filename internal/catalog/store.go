package catalog

import (
	"encoding/json"
	"os"

	"coolpc/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Store holds the catalog snapshot loaded once at start-up. The snapshot is
// never mutated afterwards, so any number of queries may read it without
// coordination.
type Store struct {
	categories []domain.Category
}

// New builds a store from already-parsed categories.
func New(categories []domain.Category) *Store {
	return &Store{categories: normalize(categories)}
}

// Load parses a catalog document (JSON array of categories). Malformed input
// degrades to an empty catalog instead of failing, queries stay well-defined.
func Load(document []byte) *Store {
	var categories []domain.Category
	if err := json.Unmarshal(document, &categories); err != nil {
		log.Errorf("❌ Failed to parse catalog document, continuing with empty catalog: %v", err)
		return &Store{}
	}
	return New(categories)
}

// LoadFile reads and parses the catalog document at path. A missing or
// unreadable file yields an empty catalog.
func LoadFile(path string) *Store {
	document, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("❌ Failed to read catalog document %s, continuing with empty catalog: %v", path, err)
		return &Store{}
	}

	store := Load(document)
	log.Infof("✅ Loaded catalog with %d categories from %s", len(store.categories), path)
	return store
}

// Categories returns the snapshot in source order. Callers must not mutate it.
func (s *Store) Categories() []domain.Category {
	return s.categories
}

// normalize enforces the invariants queries rely on: specs and markers are
// present on every product even when the source document had nulls.
func normalize(categories []domain.Category) []domain.Category {
	for ci := range categories {
		for si := range categories[ci].Subcategories {
			products := categories[ci].Subcategories[si].Products
			for pi := range products {
				if products[pi].Specs == nil {
					products[pi].Specs = []string{}
				}
				if products[pi].Markers == nil {
					products[pi].Markers = []string{}
				}
			}
		}
	}
	return categories
}
