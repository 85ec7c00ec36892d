package integrate

import (
	"testing"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triple(head, tail string) graph.Triple {
	return graph.Triple{Head: head, Relation: usage.RelationRequires, Tail: tail, Status: usage.StatusActive}
}

func TestIntegrate_Idempotent(t *testing.T) {
	e := New()

	first, flagged := e.Integrate([]graph.Triple{triple("A", "B")}, nil)
	require.Len(t, first, 1)
	assert.Empty(t, flagged)

	// Integrating the same triple against the committed set adds nothing.
	second, flagged := e.Integrate([]graph.Triple{triple("A", "B")}, first)
	assert.Empty(t, second)
	assert.Empty(t, flagged)
}

func TestIntegrate_CaseVariantsCollapse(t *testing.T) {
	e := New()

	toAdd, _ := e.Integrate([]graph.Triple{
		triple("A", "B"),
		triple("a", "b"),
	}, nil)

	assert.Len(t, toAdd, 1)
}

func TestIntegrate_InBatchDuplicates(t *testing.T) {
	e := New()

	toAdd, _ := e.Integrate([]graph.Triple{
		triple("A", "B"),
		triple("C", "D"),
		triple("A", "B"),
	}, nil)

	require.Len(t, toAdd, 2)
	assert.Equal(t, "A", toAdd[0].Head)
	assert.Equal(t, "C", toAdd[1].Head)
}

func TestIntegrate_SkipsExisting(t *testing.T) {
	e := New()
	existing := []graph.Triple{triple("A", "B")}

	toAdd, _ := e.Integrate([]graph.Triple{triple("a", "B"), triple("X", "Y")}, existing)

	require.Len(t, toAdd, 1)
	assert.Equal(t, "X", toAdd[0].Head)
}

func TestIntegrate_Pure(t *testing.T) {
	e := New()
	existing := []graph.Triple{triple("A", "B")}

	e.Integrate([]graph.Triple{triple("X", "Y")}, existing)

	assert.Len(t, existing, 1, "existing slice must not be mutated")
}

// everythingConflicts exercises the conflict extension point.
type everythingConflicts struct{}

func (everythingConflicts) Conflicts(graph.Triple, []graph.Triple) bool { return true }

func TestIntegrate_ConflictDetector(t *testing.T) {
	e := New(WithConflictDetector(everythingConflicts{}))

	toAdd, toFlag := e.Integrate([]graph.Triple{triple("A", "B")}, nil)
	assert.Empty(t, toAdd)
	assert.Len(t, toFlag, 1)
}

func TestIntegrate_DefaultNeverFlags(t *testing.T) {
	e := New()

	// Contradictory-looking triples still pass: conflict detection is an
	// extension point, off by default.
	toAdd, toFlag := e.Integrate([]graph.Triple{
		{Head: "X", Relation: usage.RelationLocatedIn, Tail: "Toolbar", Status: usage.StatusActive},
		{Head: "X", Relation: usage.RelationLocatedIn, Tail: "Sidebar", Status: usage.StatusActive},
	}, nil)

	assert.Len(t, toAdd, 2)
	assert.Empty(t, toFlag)
}
