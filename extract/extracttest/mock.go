// Package extracttest provides a canned-fixture extraction service for
// pipeline and command tests.
package extracttest

import (
	"context"
	"sync"

	"github.com/c360studio/karma/extract"
	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/impact"
)

// MockService is a thread-safe extract.Service double. Each operation
// returns its configured fixture, or the corresponding error when set.
// Per-operation call counts are tracked for verification.
type MockService struct {
	mu    sync.Mutex
	calls map[string]int

	ClassifyResult      extract.Classification
	ClassifyErr         error
	UIElementsResult    []graph.Entity
	UIElementsErr       error
	FeaturesResult      []graph.Entity
	FeaturesErr         error
	ProceduresResult    []graph.Procedure
	ProceduresErr       error
	RelationshipsResult []graph.Triple
	RelationshipsErr    error
	VersionsErr         error
	ChangesResult       extract.ChangeSet
	ChangesErr          error
	ImpactResult        []impact.Assessment
	ImpactErr           error

	// ResolveVersionsFn overrides the default pass-through behavior of
	// ResolveVersions when set.
	ResolveVersionsFn func(triples []graph.Triple, contextText, detectedVersion string) []graph.Triple
}

var _ extract.Service = (*MockService)(nil)

func (m *MockService) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
}

// Calls returns how many times the named operation was invoked.
func (m *MockService) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockService) Classify(_ context.Context, _ string) (extract.Classification, error) {
	m.record("classify")
	return m.ClassifyResult, m.ClassifyErr
}

func (m *MockService) ExtractUIElements(_ context.Context, _, _ string) ([]graph.Entity, error) {
	m.record("ui_elements")
	return m.UIElementsResult, m.UIElementsErr
}

func (m *MockService) ExtractFeatures(_ context.Context, _, _ string) ([]graph.Entity, error) {
	m.record("features")
	return m.FeaturesResult, m.FeaturesErr
}

func (m *MockService) ExtractProcedures(_ context.Context, _, _ string) ([]graph.Procedure, error) {
	m.record("procedures")
	return m.ProceduresResult, m.ProceduresErr
}

func (m *MockService) ExtractRelationships(_ context.Context, _ string, _ []graph.Entity) ([]graph.Triple, error) {
	m.record("relationships")
	return m.RelationshipsResult, m.RelationshipsErr
}

// ResolveVersions returns the input triples unchanged unless
// ResolveVersionsFn is set.
func (m *MockService) ResolveVersions(_ context.Context, triples []graph.Triple, contextText, detectedVersion string) ([]graph.Triple, error) {
	m.record("versions")
	if m.VersionsErr != nil {
		return nil, m.VersionsErr
	}
	if m.ResolveVersionsFn != nil {
		return m.ResolveVersionsFn(triples, contextText, detectedVersion), nil
	}
	return triples, nil
}

func (m *MockService) DetectChanges(_ context.Context, _ string) (extract.ChangeSet, error) {
	m.record("changes")
	return m.ChangesResult, m.ChangesErr
}

func (m *MockService) AnalyzeImpact(_ context.Context, _ []graph.ChangeRecord, _ []graph.Triple) ([]impact.Assessment, error) {
	m.record("impact")
	return m.ImpactResult, m.ImpactErr
}
