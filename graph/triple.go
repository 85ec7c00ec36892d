package graph

import (
	"fmt"
	"strings"

	"github.com/c360studio/karma/vocabulary/usage"
)

// Triple is a versioned (head, relation, tail) fact. Head and tail are
// entity display names, resolved against the registry at read time; a
// triple may reference names the registry does not hold.
type Triple struct {
	Head              string             `json:"head"`
	Relation          usage.RelationType `json:"relation"`
	Tail              string             `json:"tail"`
	HeadType          usage.EntityType   `json:"head_type"`
	TailType          usage.EntityType   `json:"tail_type"`
	IntroducedVersion string             `json:"introduced_version"`
	DeprecatedVersion string             `json:"deprecated_version"`
	ValidRange        string             `json:"valid_version_range"`
	Confidence        float64            `json:"confidence"`
	SourceDocument    string             `json:"source_document"`
	SourceDate        string             `json:"source_date"`
	StepOrder         int                `json:"step_order"`
	Status            usage.TripleStatus `json:"status"`
	Software          string             `json:"software"`
}

// Key returns the case-insensitive identity of the triple. Confidence and
// version metadata are deliberately excluded: two extractions of the same
// fact are the same fact.
func (t Triple) Key() string {
	return strings.ToLower(t.Head) + "|" + string(t.Relation) + "|" + strings.ToLower(t.Tail)
}

// String renders the triple for prompts and logs.
func (t Triple) String() string {
	if t.ValidRange != "" {
		return fmt.Sprintf("(%s) -[%s]-> (%s) [%s]", t.Head, t.Relation, t.Tail, t.ValidRange)
	}
	return fmt.Sprintf("(%s) -[%s]-> (%s)", t.Head, t.Relation, t.Tail)
}

// TripleStore is the ordered fact table. Insertion order is significant for
// stable export and for impact-assessment indices, not for semantics.
type TripleStore struct {
	triples []Triple
}

// NewTripleStore creates an empty store.
func NewTripleStore() *TripleStore {
	return &TripleStore{}
}

// Append adds triples to the end of the store.
func (s *TripleStore) Append(triples ...Triple) {
	s.triples = append(s.triples, triples...)
}

// All returns the underlying triple slice. Callers must treat it as
// read-only; mutation goes through the status transition methods.
func (s *TripleStore) All() []Triple {
	return s.triples
}

// Len returns the number of stored triples.
func (s *TripleStore) Len() int {
	return len(s.triples)
}

// At returns the triple at index i.
func (s *TripleStore) At(i int) (Triple, bool) {
	if i < 0 || i >= len(s.triples) {
		return Triple{}, false
	}
	return s.triples[i], true
}

// Deprecate transitions the triple at index i from active to deprecated,
// recording the version that invalidated it. It returns false when the
// index is out of range or the triple is not active: deprecated and
// needs-review are terminal states.
func (s *TripleStore) Deprecate(i int, version string) bool {
	if i < 0 || i >= len(s.triples) {
		return false
	}
	if s.triples[i].Status != usage.StatusActive {
		return false
	}
	s.triples[i].Status = usage.StatusDeprecated
	s.triples[i].DeprecatedVersion = version
	return true
}

// FlagForReview transitions the triple at index i from active to
// needs-review. Same range and monotonicity rules as Deprecate.
func (s *TripleStore) FlagForReview(i int) bool {
	if i < 0 || i >= len(s.triples) {
		return false
	}
	if s.triples[i].Status != usage.StatusActive {
		return false
	}
	s.triples[i].Status = usage.StatusNeedsReview
	return true
}

// KeySet returns the identity keys of all stored triples.
func (s *TripleStore) KeySet() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.triples))
	for _, t := range s.triples {
		keys[t.Key()] = struct{}{}
	}
	return keys
}
