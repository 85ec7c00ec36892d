// Package impact applies software changes to an existing knowledge graph:
// it transitions triples invalidated by a release and synthesizes new
// triples describing the changes themselves.
package impact

import (
	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
)

// Kind is the judgment on how a change affects an existing triple.
type Kind string

const (
	// Deprecated means the triple is no longer valid.
	Deprecated Kind = "deprecated"

	// NeedsUpdate means the triple should be reviewed and likely rewritten.
	NeedsUpdate Kind = "needs_update"

	// Unaffected means the triple stands.
	Unaffected Kind = "unaffected"
)

// Assessment is one impact judgment on an existing triple, produced by the
// extraction service. TripleIndex addresses the triple store by position;
// out-of-range indices are ignored.
type Assessment struct {
	TripleIndex     int    `json:"triple_index"`
	Impact          Kind   `json:"impact"`
	Reason          string `json:"reason"`
	SuggestedUpdate string `json:"suggested_update"`
}

// Report summarizes the transitions applied by a maintenance run.
type Report struct {
	// Deprecated holds the triples transitioned to deprecated, after
	// transition (deprecated_version set).
	Deprecated []graph.Triple

	// Flagged is the number of triples transitioned to needs-review.
	Flagged int
}

// Apply walks the assessments and applies the corresponding status
// transitions to the store. Deprecations record version as the
// deprecated_version. Indices outside the store and judgments on
// non-active triples are skipped; terminal states never transition again.
func Apply(store *graph.TripleStore, assessments []Assessment, version string) Report {
	var report Report

	for _, a := range assessments {
		switch a.Impact {
		case Deprecated:
			if store.Deprecate(a.TripleIndex, version) {
				t, _ := store.At(a.TripleIndex)
				report.Deprecated = append(report.Deprecated, t)
			}
		case NeedsUpdate:
			if store.FlagForReview(a.TripleIndex) {
				report.Flagged++
			}
		}
	}

	return report
}

// Synthesize converts change records into the triples and entities that
// describe the changes. The mapping is deterministic, one rule per change
// type; changed and fixed records are informational and produce nothing.
// All outputs inherit software; a change without its own version label
// falls back to fallbackVersion.
func Synthesize(changes []graph.ChangeRecord, fallbackVersion, software string) ([]graph.Triple, []graph.Entity) {
	var triples []graph.Triple
	var entities []graph.Entity

	for _, c := range changes {
		v := c.Version
		if v == "" {
			v = fallbackVersion
		}

		switch c.ChangeType {
		case usage.ChangeAdded:
			e := graph.NewEntity(c.EntityType, c.EntityName)
			e.Description = c.Description
			e.VersionIntroduced = v
			e.Software = software
			entities = append(entities, e)

			triples = append(triples, graph.Triple{
				Head:              c.EntityName,
				Relation:          usage.RelationIntroducedIn,
				Tail:              v,
				HeadType:          c.EntityType,
				TailType:          usage.EntityVersion,
				IntroducedVersion: v,
				ValidRange:        v + "+",
				Confidence:        0.95,
				Status:            usage.StatusActive,
				Software:          software,
			})

		case usage.ChangeRemoved:
			triples = append(triples, graph.Triple{
				Head:       c.EntityName,
				Relation:   usage.RelationRemovedIn,
				Tail:       v,
				HeadType:   c.EntityType,
				TailType:   usage.EntityVersion,
				Confidence: 0.95,
				Status:     usage.StatusActive,
				Software:   software,
			})

			if c.NewValue != "" {
				triples = append(triples, graph.Triple{
					Head:       c.EntityName,
					Relation:   usage.RelationReplacedBy,
					Tail:       c.NewValue,
					HeadType:   c.EntityType,
					TailType:   c.EntityType,
					Confidence: 0.90,
					Status:     usage.StatusActive,
					Software:   software,
				})
			}

		case usage.ChangeMoved:
			triples = append(triples,
				graph.Triple{
					Head:              c.EntityName,
					Relation:          usage.RelationMovedTo,
					Tail:              c.NewValue,
					HeadType:          c.EntityType,
					TailType:          usage.EntityUIElement,
					IntroducedVersion: v,
					Confidence:        0.90,
					Status:            usage.StatusActive,
					Software:          software,
				},
				graph.Triple{
					Head:              c.EntityName,
					Relation:          usage.RelationLocatedIn,
					Tail:              c.NewValue,
					HeadType:          c.EntityType,
					TailType:          usage.EntityUIElement,
					IntroducedVersion: v,
					ValidRange:        v + "+",
					Confidence:        0.90,
					Status:            usage.StatusActive,
					Software:          software,
				},
			)

		case usage.ChangeRenamed:
			head := c.OldValue
			if head == "" {
				head = c.EntityName
			}
			triples = append(triples, graph.Triple{
				Head:              head,
				Relation:          usage.RelationRenamedTo,
				Tail:              c.NewValue,
				HeadType:          c.EntityType,
				TailType:          c.EntityType,
				IntroducedVersion: v,
				Confidence:        0.95,
				Status:            usage.StatusActive,
				Software:          software,
			})
		}
	}

	return triples, entities
}
