package commands

import (
	"testing"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/stretchr/testify/assert"
)

func queryGraph() *graph.Graph {
	g := graph.New()
	g.Triples.Append(
		graph.Triple{
			Head: "Brush tool", Relation: usage.RelationLocatedIn, Tail: "Toolbar",
			ValidRange: "2020+", Status: usage.StatusActive,
		},
		graph.Triple{
			Head: "Brush tool", Relation: usage.RelationRequires, Tail: "Canvas",
			ValidRange: "2019-2021", Status: usage.StatusActive,
		},
		graph.Triple{
			Head: "Brush tool", Relation: usage.RelationLocatedIn, Tail: "Tool Options",
			Status: usage.StatusDeprecated, DeprecatedVersion: "2020",
		},
		graph.Triple{
			Head: "Crop tool", Relation: usage.RelationLocatedIn, Tail: "Toolbar",
			Status: usage.StatusActive,
		},
	)
	return g
}

func TestFilterTriples_ByEntity(t *testing.T) {
	g := queryGraph()

	matches := filterTriples(g, "brush TOOL", "", "", false)
	assert.Len(t, matches, 2, "case-insensitive match, deprecated excluded")

	matches = filterTriples(g, "Toolbar", "", "", false)
	assert.Len(t, matches, 2, "tail matches count too")
}

func TestFilterTriples_ByRelation(t *testing.T) {
	g := queryGraph()

	matches := filterTriples(g, "Brush tool", "requires", "", false)
	assert.Len(t, matches, 1)
	assert.Equal(t, "Canvas", matches[0].Tail)
}

func TestFilterTriples_IncludeAll(t *testing.T) {
	g := queryGraph()

	matches := filterTriples(g, "Brush tool", "", "", true)
	assert.Len(t, matches, 3, "deprecated included with --all")
}

func TestFilterTriples_AtVersion(t *testing.T) {
	g := queryGraph()

	// 2022 is outside the 2019-2021 span but inside 2020+.
	matches := filterTriples(g, "Brush tool", "", "2022", false)
	assert.Len(t, matches, 1)
	assert.Equal(t, "Toolbar", matches[0].Tail)

	// 2020 satisfies both ranges.
	matches = filterTriples(g, "Brush tool", "", "2020", false)
	assert.Len(t, matches, 2)
}

func TestFilterTriples_NoMatch(t *testing.T) {
	g := queryGraph()
	assert.Empty(t, filterTriples(g, "Healing Brush", "", "", true))
}
