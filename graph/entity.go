package graph

import (
	"strings"

	"github.com/c360studio/karma/vocabulary/usage"
)

// Entity is a named, typed object in the software's usage domain.
type Entity struct {
	ID                string           `json:"entity_id"`
	Name              string           `json:"name"`
	Type              usage.EntityType `json:"entity_type"`
	Description       string           `json:"description"`
	ParentPath        string           `json:"parent_path"`
	Software          string           `json:"software"`
	VersionIntroduced string           `json:"version_introduced"`
	VersionDeprecated string           `json:"version_deprecated"`
	Aliases           []string         `json:"aliases,omitempty"`
}

// NormalizeName lowercases a display name and collapses whitespace runs to
// single underscores. It is the canonical form used for identity.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "_")
}

// EntityID derives the deterministic identifier for an entity. Two entities
// with the same type and case-variant names always get the same id, so
// re-deriving the same entity from different sources cannot fork it.
func EntityID(t usage.EntityType, name string) string {
	return strings.ToLower(string(t)) + "_" + NormalizeName(name)
}

// NewEntity builds an entity with its derived id.
func NewEntity(t usage.EntityType, name string) Entity {
	return Entity{
		ID:   EntityID(t, name),
		Name: name,
		Type: t,
	}
}

// Registry deduplicates and stores entities keyed by their derived id.
//
// Registration policy is first-wins: when an incoming entity collides with
// a registered id, the registered entity is kept unchanged and the incoming
// fields are dropped. Entities are never deleted.
type Registry struct {
	byID    map[string]Entity
	byName  map[string]string // normalized display name -> entity id
	ordered []string          // ids in registration order, for stable export
}

// NewRegistry creates an empty entity registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Entity),
		byName: make(map[string]string),
	}
}

// Register stores an entity, deriving its id from (type, normalized name).
// It returns the id and whether the entity was newly added. On collision
// the first-registered entity wins and the incoming one is dropped.
func (r *Registry) Register(e Entity) (string, bool) {
	if e.ID == "" {
		e.ID = EntityID(e.Type, e.Name)
	}
	if _, exists := r.byID[e.ID]; exists {
		return e.ID, false
	}

	r.byID[e.ID] = e
	r.ordered = append(r.ordered, e.ID)

	// First registration of a display name claims the lookup slot too.
	key := strings.ToLower(e.Name)
	if _, taken := r.byName[key]; !taken {
		r.byName[key] = e.ID
	}

	return e.ID, true
}

// Lookup resolves a display name case-insensitively to an entity.
// Aliases are not consulted.
func (r *Registry) Lookup(name string) (Entity, bool) {
	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Entity{}, false
	}
	e, ok := r.byID[id]
	return e, ok
}

// Get returns an entity by id.
func (r *Registry) Get(id string) (Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All returns entities in registration order.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.byID)
}
