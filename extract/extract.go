// Package extract defines the extraction service boundary: the set of
// analysis operations the pipeline delegates to an LLM. The pipeline treats
// the service as untrusted: every result is re-validated against the
// vocabulary before it reaches the graph.
package extract

import (
	"context"
	"fmt"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/impact"
	"github.com/c360studio/karma/vocabulary/usage"
)

// Classification is the service's judgment on an incoming document.
type Classification struct {
	DocumentType   usage.DocumentType `json:"document_type"`
	Software       string             `json:"software"`
	Version        string             `json:"version"`
	Date           string             `json:"date"`
	RelevanceScore float64            `json:"relevance_score"`
	MainTopics     []string           `json:"main_topics"`
	Rationale      string             `json:"rationale"`
}

// ChangeSet is the structured output of change detection over a release
// notes document. Version is the release the changes apply to.
type ChangeSet struct {
	Version string
	Changes []graph.ChangeRecord
}

// Service is the extraction boundary. Implementations translate raw
// documentation text into typed domain values; the reference implementation
// is LLM-backed, test doubles return canned fixtures.
type Service interface {
	// Classify determines document type, software, and version.
	Classify(ctx context.Context, text string) (Classification, error)

	// ExtractUIElements finds UI elements (buttons, menus, panels, tools)
	// mentioned in a text segment.
	ExtractUIElements(ctx context.Context, text, software string) ([]graph.Entity, error)

	// ExtractFeatures finds features, concepts, settings, file formats,
	// shortcuts, and outcomes in a text segment.
	ExtractFeatures(ctx context.Context, text, software string) ([]graph.Entity, error)

	// ExtractProcedures finds step-by-step procedures in a text segment.
	// Procedures without steps are discarded.
	ExtractProcedures(ctx context.Context, text, software string) ([]graph.Procedure, error)

	// ExtractRelationships finds relationships between the given entities
	// that the text explicitly supports.
	ExtractRelationships(ctx context.Context, text string, entities []graph.Entity) ([]graph.Triple, error)

	// ResolveVersions assigns version metadata to triples using the
	// surrounding text. Triples without explicit version evidence fall back
	// to "<detectedVersion>+" when a document version is known.
	ResolveVersions(ctx context.Context, triples []graph.Triple, contextText, detectedVersion string) ([]graph.Triple, error)

	// DetectChanges extracts structured change records from release notes.
	DetectChanges(ctx context.Context, text string) (ChangeSet, error)

	// AnalyzeImpact judges how a set of changes affects existing triples.
	// Assessments reference triples by index into existing.
	AnalyzeImpact(ctx context.Context, changes []graph.ChangeRecord, existing []graph.Triple) ([]impact.Assessment, error)
}

// ErrorKind classifies extraction failures for the pipeline's degrade
// policy.
type ErrorKind string

const (
	// KindUnavailable means the service could not be reached or refused
	// the request. The operation may succeed later.
	KindUnavailable ErrorKind = "unavailable"

	// KindMalformed means the service responded but the payload could not
	// be interpreted. Retrying the same input is unlikely to help.
	KindMalformed ErrorKind = "malformed"
)

// Error is a classified extraction failure.
type Error struct {
	Kind ErrorKind
	Op   string // operation name, e.g. "classify"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("extract %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// unavailable wraps err as a KindUnavailable failure of op.
func unavailable(op string, err error) error {
	return &Error{Kind: KindUnavailable, Op: op, Err: err}
}

// malformed wraps err as a KindMalformed failure of op.
func malformed(op string, err error) error {
	return &Error{Kind: KindMalformed, Op: op, Err: err}
}
