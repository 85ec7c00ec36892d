package graph

import "github.com/c360studio/karma/vocabulary/usage"

// ChangeRecord describes one difference introduced by a software update.
// Records are transient: the impact engine consumes them and only the
// triples they produce are stored in the graph.
type ChangeRecord struct {
	ChangeType  usage.ChangeType `json:"change_type"`
	EntityName  string           `json:"entity_name"`
	EntityType  usage.EntityType `json:"entity_type"`
	OldValue    string           `json:"old_value"`
	NewValue    string           `json:"new_value"`
	Version     string           `json:"version"`
	Description string           `json:"description"`
}
