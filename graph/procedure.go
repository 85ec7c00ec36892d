package graph

import (
	"strings"

	"github.com/c360studio/karma/vocabulary/usage"
)

// Procedure is a multi-step workflow. Steps are plain instruction strings
// and are immutable once extracted; they surface in the graph as Step-typed
// heads of derived triples.
type Procedure struct {
	ID            string   `json:"procedure_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Steps         []string `json:"steps"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Outcome       string   `json:"outcome"`
	Software      string   `json:"software"`
	VersionRange  string   `json:"version_range"`
}

// ProcedureID derives a deterministic identifier from name and software.
func ProcedureID(name, software string) string {
	id := "proc_" + NormalizeName(name)
	if software != "" {
		id += "_" + NormalizeName(software)
	}
	return id
}

// ProcedureIndex stores procedures keyed by (name, software). Procedures
// merge only on an identical key; there is no fuzzy matching, and the
// first-stored procedure's steps are kept.
type ProcedureIndex struct {
	byKey   map[string]Procedure
	ordered []string
}

// NewProcedureIndex creates an empty index.
func NewProcedureIndex() *ProcedureIndex {
	return &ProcedureIndex{byKey: make(map[string]Procedure)}
}

func procedureKey(name, software string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(software)
}

// Add stores a procedure, assigning its id if unset. Returns whether the
// procedure was newly added; an existing procedure with the same name and
// software is left unchanged.
func (ix *ProcedureIndex) Add(p Procedure) bool {
	key := procedureKey(p.Name, p.Software)
	if _, exists := ix.byKey[key]; exists {
		return false
	}
	if p.ID == "" {
		p.ID = ProcedureID(p.Name, p.Software)
	}
	ix.byKey[key] = p
	ix.ordered = append(ix.ordered, key)
	return true
}

// Get retrieves a procedure by name and software.
func (ix *ProcedureIndex) Get(name, software string) (Procedure, bool) {
	p, ok := ix.byKey[procedureKey(name, software)]
	return p, ok
}

// All returns procedures in insertion order.
func (ix *ProcedureIndex) All() []Procedure {
	out := make([]Procedure, 0, len(ix.ordered))
	for _, key := range ix.ordered {
		out = append(out, ix.byKey[key])
	}
	return out
}

// Len returns the number of stored procedures.
func (ix *ProcedureIndex) Len() int {
	return len(ix.byKey)
}

// DeriveTriples expands a procedure into its structural triples:
//
//   - (procedure) achieves (outcome), when the outcome is non-empty
//   - (step_i) part_of (procedure), step_order i+1
//   - (step_{i-1}) next_step (step_i), for each adjacent pair
//
// The derivation is deterministic; a 3-step procedure with an outcome
// yields exactly 1 + 3 + 2 triples.
func DeriveTriples(p Procedure) []Triple {
	var triples []Triple

	if p.Outcome != "" {
		triples = append(triples, Triple{
			Head:     p.Name,
			Relation: usage.RelationAchieves,
			Tail:     p.Outcome,
			HeadType: usage.EntityProcedure,
			TailType: usage.EntityOutcome,
			Confidence: 0.9,
			Status:     usage.StatusActive,
			Software:   p.Software,
		})
	}

	for i, step := range p.Steps {
		triples = append(triples, Triple{
			Head:       step,
			Relation:   usage.RelationPartOf,
			Tail:       p.Name,
			HeadType:   usage.EntityStep,
			TailType:   usage.EntityProcedure,
			StepOrder:  i + 1,
			Confidence: 0.95,
			Status:     usage.StatusActive,
			Software:   p.Software,
		})

		if i > 0 {
			triples = append(triples, Triple{
				Head:       p.Steps[i-1],
				Relation:   usage.RelationNextStep,
				Tail:       step,
				HeadType:   usage.EntityStep,
				TailType:   usage.EntityStep,
				Confidence: 0.95,
				Status:     usage.StatusActive,
				Software:   p.Software,
			})
		}
	}

	return triples
}
