package graph

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/karma/version"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_ActiveForVersion(t *testing.T) {
	g := New()
	g.Triples.Append(
		Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive, ValidRange: "unknown"},
		Triple{Head: "C", Relation: usage.RelationRequires, Tail: "D", Status: usage.StatusActive, ValidRange: "2020+"},
		Triple{Head: "E", Relation: usage.RelationRequires, Tail: "F", Status: usage.StatusActive, ValidRange: "2019-2023"},
		Triple{Head: "G", Relation: usage.RelationRequires, Tail: "H", Status: usage.StatusDeprecated, ValidRange: "unknown"},
	)

	got := g.ActiveForVersion("2021")
	require.Len(t, got, 3)

	got = g.ActiveForVersion("2024")
	require.Len(t, got, 2) // span 2019-2023 excluded

	got = g.ActiveForVersion("2019")
	require.Len(t, got, 2) // "2020+" excluded
}

func TestGraph_Outdated(t *testing.T) {
	g := New()
	g.Triples.Append(
		Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive},
		Triple{Head: "C", Relation: usage.RelationRequires, Tail: "D", Status: usage.StatusDeprecated},
		Triple{Head: "E", Relation: usage.RelationRequires, Tail: "F", Status: usage.StatusNeedsReview},
		Triple{Head: "G", Relation: usage.RelationRequires, Tail: "H", Status: usage.StatusPending},
	)

	got := g.Outdated()
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Head)
	assert.Equal(t, "E", got[1].Head)
}

func TestGraph_CustomComparator(t *testing.T) {
	g := New(WithComparator(version.Numeric))
	g.Triples.Append(Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive, ValidRange: "9+"})

	assert.Len(t, g.ActiveForVersion("10"), 1)

	// Same data under the lexicographic default: "10" < "9".
	lex := New()
	lex.Triples.Append(Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive, ValidRange: "9+"})
	assert.Empty(t, lex.ActiveForVersion("10"))
}

func TestGraph_SetSoftware_FirstSticks(t *testing.T) {
	g := New()
	g.SetSoftware("")
	g.SetSoftware("Adobe Photoshop")
	g.SetSoftware("Something Else")
	assert.Equal(t, "Adobe Photoshop", g.Software())
}

func TestGraph_ExportImportRoundTrip(t *testing.T) {
	g := New()
	g.SetSoftware("Adobe Photoshop")
	g.AddVersion("2023")
	g.AddVersion("2024")

	g.Entities.Register(NewEntity(usage.EntityFeature, "Generative Fill"))
	g.Entities.Register(NewEntity(usage.EntityUIElement, "Layers Panel"))
	g.Procedures.Add(Procedure{Name: "Remove Background", Steps: []string{"a", "b"}, Software: "Adobe Photoshop"})
	g.Triples.Append(
		Triple{Head: "Generative Fill", Relation: usage.RelationIntroducedIn, Tail: "2023", Status: usage.StatusActive, ValidRange: "2023+"},
		Triple{Head: "Old Thing", Relation: usage.RelationRemovedIn, Tail: "2024", Status: usage.StatusDeprecated},
	)

	doc := g.Export()

	// Round-trip through JSON, the persistence format.
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := Import(decoded)

	assert.Equal(t, g.Software(), restored.Software())
	assert.Equal(t, g.Versions(), restored.Versions())
	assert.Equal(t, g.Entities.Len(), restored.Entities.Len())
	assert.Equal(t, g.Procedures.Len(), restored.Procedures.Len())
	assert.Equal(t, g.Triples.Len(), restored.Triples.Len())
	assert.Equal(t, g.Stats(), restored.Stats())
}

func TestGraph_Stats(t *testing.T) {
	g := New()
	g.Entities.Register(NewEntity(usage.EntityFeature, "X"))
	g.Triples.Append(
		Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive},
		Triple{Head: "C", Relation: usage.RelationRequires, Tail: "D", Status: usage.StatusActive},
		Triple{Head: "E", Relation: usage.RelationRequires, Tail: "F", Status: usage.StatusDeprecated},
	)

	s := g.Stats()
	assert.Equal(t, 1, s.TotalEntities)
	assert.Equal(t, 3, s.TotalTriples)
	assert.Equal(t, 2, s.ActiveTriples)
	assert.Equal(t, 1, s.DeprecatedTriples)
}

func TestGraph_Counts(t *testing.T) {
	g := New()
	g.Triples.Append(
		Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive},
		Triple{Head: "C", Relation: usage.RelationRequires, Tail: "D", Status: usage.StatusNeedsReview},
		Triple{Head: "E", Relation: usage.RelationLocatedIn, Tail: "F", Status: usage.StatusActive},
	)

	byStatus := g.CountByStatus()
	assert.Equal(t, 2, byStatus[usage.StatusActive])
	assert.Equal(t, 1, byStatus[usage.StatusNeedsReview])

	byRelation := g.CountByRelation()
	assert.Equal(t, 2, byRelation[usage.RelationRequires])
	assert.Equal(t, 1, byRelation[usage.RelationLocatedIn])
}
