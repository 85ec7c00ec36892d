package impact

import (
	"testing"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Deprecation(t *testing.T) {
	store := graph.NewTripleStore()
	store.Append(
		graph.Triple{Head: "Healing Brush", Relation: usage.RelationLocatedIn, Tail: "Toolbar", Status: usage.StatusActive},
		graph.Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive},
	)

	report := Apply(store, []Assessment{
		{TripleIndex: 0, Impact: Deprecated, Reason: "Healing Brush moved"},
		{TripleIndex: 1, Impact: NeedsUpdate},
	}, "2024")

	require.Len(t, report.Deprecated, 1)
	assert.Equal(t, "Healing Brush", report.Deprecated[0].Head)
	assert.Equal(t, "2024", report.Deprecated[0].DeprecatedVersion)
	assert.Equal(t, 1, report.Flagged)

	got, _ := store.At(0)
	assert.Equal(t, usage.StatusDeprecated, got.Status)
	got, _ = store.At(1)
	assert.Equal(t, usage.StatusNeedsReview, got.Status)
}

func TestApply_OutOfRangeIgnored(t *testing.T) {
	store := graph.NewTripleStore()
	store.Append(graph.Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive})

	report := Apply(store, []Assessment{
		{TripleIndex: -1, Impact: Deprecated},
		{TripleIndex: 7, Impact: Deprecated},
		{TripleIndex: 2, Impact: NeedsUpdate},
	}, "2024")

	assert.Empty(t, report.Deprecated)
	assert.Zero(t, report.Flagged)
}

func TestApply_TerminalStatesStay(t *testing.T) {
	store := graph.NewTripleStore()
	store.Append(graph.Triple{Head: "A", Relation: usage.RelationRequires, Tail: "B", Status: usage.StatusActive})

	Apply(store, []Assessment{{TripleIndex: 0, Impact: Deprecated}}, "2023")

	// A later run judging the same triple again changes nothing.
	report := Apply(store, []Assessment{
		{TripleIndex: 0, Impact: Deprecated},
		{TripleIndex: 0, Impact: NeedsUpdate},
	}, "2024")

	assert.Empty(t, report.Deprecated)
	assert.Zero(t, report.Flagged)

	got, _ := store.At(0)
	assert.Equal(t, "2023", got.DeprecatedVersion)
}

func TestSynthesize_Added(t *testing.T) {
	changes := []graph.ChangeRecord{{
		ChangeType:  usage.ChangeAdded,
		EntityName:  "Generative Fill",
		EntityType:  usage.EntityFeature,
		Version:     "2024",
		Description: "AI-powered content generation",
	}}

	triples, entities := Synthesize(changes, "", "Adobe Photoshop")

	require.Len(t, triples, 1)
	tr := triples[0]
	assert.Equal(t, "Generative Fill", tr.Head)
	assert.Equal(t, usage.RelationIntroducedIn, tr.Relation)
	assert.Equal(t, "2024", tr.Tail)
	assert.Equal(t, "2024+", tr.ValidRange)
	assert.Equal(t, usage.EntityVersion, tr.TailType)
	assert.InDelta(t, 0.95, tr.Confidence, 1e-9)
	assert.Equal(t, "Adobe Photoshop", tr.Software)

	require.Len(t, entities, 1)
	assert.Equal(t, "2024", entities[0].VersionIntroduced)
	assert.Equal(t, usage.EntityFeature, entities[0].Type)
	assert.Equal(t, graph.EntityID(usage.EntityFeature, "Generative Fill"), entities[0].ID)
}

func TestSynthesize_Moved(t *testing.T) {
	changes := []graph.ChangeRecord{{
		ChangeType: usage.ChangeMoved,
		EntityName: "Healing Brush",
		EntityType: usage.EntityUIElement,
		OldValue:   "Toolbar",
		NewValue:   "Contextual Toolbar",
		Version:    "2024",
	}}

	triples, entities := Synthesize(changes, "", "Adobe Photoshop")
	assert.Empty(t, entities)
	require.Len(t, triples, 2)

	assert.Equal(t, usage.RelationMovedTo, triples[0].Relation)
	assert.Equal(t, "Contextual Toolbar", triples[0].Tail)
	assert.Equal(t, "2024", triples[0].IntroducedVersion)
	assert.Empty(t, triples[0].ValidRange)

	assert.Equal(t, usage.RelationLocatedIn, triples[1].Relation)
	assert.Equal(t, "Contextual Toolbar", triples[1].Tail)
	assert.Equal(t, "2024+", triples[1].ValidRange)
}

func TestSynthesize_RemovedWithReplacement(t *testing.T) {
	changes := []graph.ChangeRecord{{
		ChangeType: usage.ChangeRemoved,
		EntityName: "Save for Web dialog",
		EntityType: usage.EntityUIElement,
		NewValue:   "Export As",
		Version:    "2024",
	}}

	triples, _ := Synthesize(changes, "", "Adobe Photoshop")
	require.Len(t, triples, 2)

	assert.Equal(t, usage.RelationRemovedIn, triples[0].Relation)
	assert.Equal(t, "2024", triples[0].Tail)
	assert.InDelta(t, 0.95, triples[0].Confidence, 1e-9)

	assert.Equal(t, usage.RelationReplacedBy, triples[1].Relation)
	assert.Equal(t, "Export As", triples[1].Tail)
	assert.InDelta(t, 0.90, triples[1].Confidence, 1e-9)
}

func TestSynthesize_RemovedWithoutReplacement(t *testing.T) {
	changes := []graph.ChangeRecord{{
		ChangeType: usage.ChangeRemoved,
		EntityName: "Legacy Gradient",
		EntityType: usage.EntityFeature,
		Version:    "2024",
	}}

	triples, _ := Synthesize(changes, "", "Adobe Photoshop")
	require.Len(t, triples, 1)
	assert.Equal(t, usage.RelationRemovedIn, triples[0].Relation)
}

func TestSynthesize_RenamedPrefersOldValue(t *testing.T) {
	changes := []graph.ChangeRecord{
		{ChangeType: usage.ChangeRenamed, EntityName: "New Name", EntityType: usage.EntityFeature, OldValue: "Old Name", NewValue: "New Name", Version: "2024"},
		{ChangeType: usage.ChangeRenamed, EntityName: "Only Name", EntityType: usage.EntityFeature, NewValue: "Renamed", Version: "2024"},
	}

	triples, _ := Synthesize(changes, "", "App")
	require.Len(t, triples, 2)
	assert.Equal(t, "Old Name", triples[0].Head)
	assert.Equal(t, "Only Name", triples[1].Head)
}

func TestSynthesize_ChangedAndFixedProduceNothing(t *testing.T) {
	changes := []graph.ChangeRecord{
		{ChangeType: usage.ChangeChanged, EntityName: "Selection tools", Version: "2024"},
		{ChangeType: usage.ChangeFixed, EntityName: "Crash on export", Version: "2024"},
	}

	triples, entities := Synthesize(changes, "", "App")
	assert.Empty(t, triples)
	assert.Empty(t, entities)
}

func TestSynthesize_FallbackVersion(t *testing.T) {
	changes := []graph.ChangeRecord{{
		ChangeType: usage.ChangeAdded,
		EntityName: "Thing",
		EntityType: usage.EntityFeature,
	}}

	triples, _ := Synthesize(changes, "2025", "App")
	require.Len(t, triples, 1)
	assert.Equal(t, "2025", triples[0].Tail)
	assert.Equal(t, "2025+", triples[0].ValidRange)
}
