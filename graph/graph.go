package graph

import (
	"sort"

	"github.com/c360studio/karma/version"
	"github.com/c360studio/karma/vocabulary/usage"
)

// Graph is the knowledge-graph aggregate: the entity registry, the triple
// store, the procedure index, the primary software name, and the set of
// known version labels.
//
// A graph is owned by a single pipeline run at a time. It is not safe for
// concurrent mutation; independent graphs (one per software product) may be
// processed in parallel.
type Graph struct {
	Entities   *Registry
	Triples    *TripleStore
	Procedures *ProcedureIndex

	software string
	versions map[string]struct{}

	// cmp orders version labels for range matching. Defaults to
	// version.Lexicographic for parity with historical behavior.
	cmp version.Comparator
}

// Option configures a Graph.
type Option func(*Graph)

// WithComparator sets the version comparator used for range matching.
func WithComparator(cmp version.Comparator) Option {
	return func(g *Graph) {
		g.cmp = cmp
	}
}

// New creates an empty knowledge graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		Entities:   NewRegistry(),
		Triples:    NewTripleStore(),
		Procedures: NewProcedureIndex(),
		versions:   make(map[string]struct{}),
		cmp:        version.Lexicographic,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Software returns the primary software name.
func (g *Graph) Software() string {
	return g.software
}

// SetSoftware records the primary software name. The first non-empty name
// sticks; later documents about the same product do not rename the graph.
func (g *Graph) SetSoftware(name string) {
	if g.software == "" && name != "" {
		g.software = name
	}
}

// AddVersion records a version label as known to this graph.
func (g *Graph) AddVersion(v string) {
	if v != "" {
		g.versions[v] = struct{}{}
	}
}

// Versions returns the known version labels, sorted for stable output.
func (g *Graph) Versions() []string {
	out := make([]string, 0, len(g.versions))
	for v := range g.versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Comparator returns the version comparator in effect.
func (g *Graph) Comparator() version.Comparator {
	return g.cmp
}

// ActiveForVersion returns every active triple whose version range contains
// the query version.
func (g *Graph) ActiveForVersion(v string) []Triple {
	var out []Triple
	for _, t := range g.Triples.All() {
		if t.Status != usage.StatusActive {
			continue
		}
		if version.Contains(t.ValidRange, v, g.cmp) {
			out = append(out, t)
		}
	}
	return out
}

// Outdated returns every deprecated or needs-review triple.
func (g *Graph) Outdated() []Triple {
	var out []Triple
	for _, t := range g.Triples.All() {
		if t.Status.Terminal() {
			out = append(out, t)
		}
	}
	return out
}

// Statistics summarizes the graph for export and reporting.
type Statistics struct {
	TotalEntities     int `json:"total_entities"`
	TotalProcedures   int `json:"total_procedures"`
	TotalTriples      int `json:"total_triples"`
	ActiveTriples     int `json:"active_triples"`
	DeprecatedTriples int `json:"deprecated_triples"`
}

// Stats computes the summary statistics.
func (g *Graph) Stats() Statistics {
	s := Statistics{
		TotalEntities:   g.Entities.Len(),
		TotalProcedures: g.Procedures.Len(),
		TotalTriples:    g.Triples.Len(),
	}
	for _, t := range g.Triples.All() {
		switch t.Status {
		case usage.StatusActive:
			s.ActiveTriples++
		case usage.StatusDeprecated:
			s.DeprecatedTriples++
		}
	}
	return s
}

// CountByStatus tallies triples per lifecycle status.
func (g *Graph) CountByStatus() map[usage.TripleStatus]int {
	counts := make(map[usage.TripleStatus]int)
	for _, t := range g.Triples.All() {
		counts[t.Status]++
	}
	return counts
}

// CountByRelation tallies triples per relation type.
func (g *Graph) CountByRelation() map[usage.RelationType]int {
	counts := make(map[usage.RelationType]int)
	for _, t := range g.Triples.All() {
		counts[t.Relation]++
	}
	return counts
}
