package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() graph.Document {
	g := graph.New()
	g.SetSoftware("Adobe Photoshop")
	g.AddVersion("2023")
	g.AddVersion("2024")

	brush := graph.NewEntity(usage.EntityUIElement, "Brush tool")
	brush.ParentPath = "Toolbar"
	brush.Aliases = []string{"paintbrush"}
	g.Entities.Register(brush)
	g.Entities.Register(graph.NewEntity(usage.EntityFeature, "Auto-Save"))

	g.Procedures.Add(graph.Procedure{
		Name:          "Paint a stroke",
		Description:   "Basic painting",
		Steps:         []string{"Select the Brush tool", "Drag on the canvas"},
		Prerequisites: []string{"An open document"},
		Outcome:       "painted stroke",
		Software:      "Adobe Photoshop",
		VersionRange:  "2023+",
	})

	g.Triples.Append(graph.Triple{
		Head: "Brush tool", Relation: usage.RelationLocatedIn, Tail: "Toolbar",
		HeadType: usage.EntityUIElement, TailType: usage.EntityUIElement,
		IntroducedVersion: "2023", ValidRange: "2023+",
		Confidence: 0.95, SourceDocument: "guide.md", SourceDate: "2024-01-15",
		Status: usage.StatusActive, Software: "Adobe Photoshop",
	}, graph.Triple{
		Head: "Select the Brush tool", Relation: usage.RelationPartOf, Tail: "Paint a stroke",
		HeadType: usage.EntityStep, TailType: usage.EntityProcedure,
		StepOrder: 1, Confidence: 0.95,
		Status: usage.StatusActive, Software: "Adobe Photoshop",
	})

	return g.Export()
}

func TestSaveLoadGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs", "kg.json")

	want := sampleDocument()
	require.NoError(t, SaveGraph(path, want))

	got, err := LoadGraph(path)
	require.NoError(t, err)

	assert.Equal(t, want.Software, got.Software)
	assert.Equal(t, want.Versions, got.Versions)
	assert.Equal(t, want.Entities, got.Entities)
	assert.Equal(t, want.Procedures, got.Procedures)
	assert.Equal(t, want.Triples, got.Triples)
	assert.Equal(t, want.Statistics, got.Statistics)
}

func TestSaveGraph_AtomicOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.json")

	require.NoError(t, SaveGraph(path, sampleDocument()))

	updated := sampleDocument()
	updated.Software = "Affinity Photo"
	require.NoError(t, SaveGraph(path, updated))

	got, err := LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, "Affinity Photo", got.Software)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadGraph_Missing(t *testing.T) {
	_, err := LoadGraph(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadGraph_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadGraph(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse graph")
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "karma.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	want := sampleDocument()

	id, err := store.Save(ctx, want)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := store.Load(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, want.Software, got.Software)
	assert.ElementsMatch(t, want.Versions, got.Versions)
	assert.Equal(t, want.Entities, got.Entities)
	assert.Equal(t, want.Procedures, got.Procedures)
	assert.Equal(t, want.Triples, got.Triples)
	assert.Equal(t, want.Statistics, got.Statistics)
}

func TestSQLiteStore_LoadLatest(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "karma.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	first := sampleDocument()
	_, err = store.Save(ctx, first)
	require.NoError(t, err)

	second := sampleDocument()
	second.Software = "Affinity Photo"
	_, err = store.Save(ctx, second)
	require.NoError(t, err)

	got, err := store.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Affinity Photo", got.Software)
}

func TestSQLiteStore_LoadLatestEmpty(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "karma.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.LoadLatest(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "no knowledge graph")
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Adobe Photoshop", got.Software)
}
