// Package pipeline orchestrates knowledge extraction. A run classifies the
// document, routes it to the ingest flow (tutorials, references, guides) or
// the maintenance flow (release notes), and commits the results to the
// knowledge graph.
//
// The pipeline never aborts on an extraction failure by default: a failed
// stage degrades to an empty result, the failure is logged and recorded on
// the run, and the run continues. FailFast opts into strict behavior.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/karma/extract"
	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/integrate"
	"github.com/c360studio/karma/source"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/google/uuid"
)

// Mode identifies which flow a run took.
type Mode string

const (
	// ModeIngest extracts new knowledge from documentation.
	ModeIngest Mode = "ingest"

	// ModeMaintenance applies release-note changes to existing knowledge.
	ModeMaintenance Mode = "maintenance"
)

// RunRecord summarizes one pipeline run. It is persisted alongside the
// graph as a run artifact.
type RunRecord struct {
	RunID        string             `json:"run_id"`
	Mode         Mode               `json:"mode"`
	Document     string             `json:"document"`
	DocumentType usage.DocumentType `json:"document_type"`
	Software     string             `json:"software"`
	Version      string             `json:"version"`

	Segments            int `json:"segments,omitempty"`
	EntitiesExtracted   int `json:"entities_extracted,omitempty"`
	ProceduresExtracted int `json:"procedures_extracted,omitempty"`
	TriplesAdded        int `json:"triples_added"`
	TriplesFlagged      int `json:"triples_flagged,omitempty"`

	ChangesDetected   int `json:"changes_detected,omitempty"`
	TriplesDeprecated int `json:"triples_deprecated,omitempty"`
	TriplesReviewed   int `json:"triples_reviewed,omitempty"`

	// Degraded lists stages that failed and were absorbed by the degrade
	// policy, in stage order.
	Degraded []string `json:"degraded,omitempty"`

	// TokensUsed is the extraction-service token consumption for this run,
	// when the service reports it.
	TokensUsed int64 `json:"tokens_used,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// tokenReporter is implemented by extraction services that track cumulative
// token consumption.
type tokenReporter interface {
	TokensUsed() int64
}

// Pipeline runs extraction against a knowledge graph.
type Pipeline struct {
	service extract.Service
	graph   *graph.Graph
	engine  *integrate.Engine
	logger  *slog.Logger

	maxSegmentLength int
	failFast         bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMaxSegmentLength sets the segmentation limit in characters.
func WithMaxSegmentLength(n int) Option {
	return func(p *Pipeline) {
		p.maxSegmentLength = n
	}
}

// WithFailFast makes extraction failures abort the run instead of
// degrading to empty results.
func WithFailFast(on bool) Option {
	return func(p *Pipeline) {
		p.failFast = on
	}
}

// WithIntegrator replaces the default integration engine.
func WithIntegrator(e *integrate.Engine) Option {
	return func(p *Pipeline) {
		p.engine = e
	}
}

// New creates a pipeline over the given graph, delegating analysis to the
// extraction service.
func New(service extract.Service, g *graph.Graph, opts ...Option) *Pipeline {
	p := &Pipeline{
		service:          service,
		graph:            g,
		engine:           integrate.New(),
		logger:           slog.Default(),
		maxSegmentLength: source.DefaultMaxSegmentLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs a document through the pipeline. Release notes route to the
// maintenance flow, everything else to ingest. The returned record is
// non-nil whenever err is nil.
func (p *Pipeline) Process(ctx context.Context, doc source.Document) (*RunRecord, error) {
	started := time.Now()
	record := &RunRecord{
		RunID:     uuid.New().String(),
		Document:  doc.Name,
		StartedAt: started,
	}

	var tokensBefore int64
	reporter, reportsTokens := p.service.(tokenReporter)
	if reportsTokens {
		tokensBefore = reporter.TokensUsed()
	}

	logger := p.logger.With("run_id", record.RunID, "document", doc.Name)
	logger.Info("Classifying document")

	classification, err := p.service.Classify(ctx, doc.Text)
	if err != nil {
		if p.failFast {
			return nil, fmt.Errorf("classify: %w", err)
		}
		// Unclassifiable documents still flow through ingest; the graph
		// just gets no software or version anchor from them.
		logger.Warn("Classification failed, treating document as unknown", "error", err)
		stageFailures.WithLabelValues("classify").Inc()
		record.Degraded = append(record.Degraded, "classify")
		classification = extract.Classification{
			DocumentType: usage.DocUnknown,
			Software:     "Unknown",
		}
	}

	record.DocumentType = classification.DocumentType
	record.Software = classification.Software
	record.Version = classification.Version

	p.graph.SetSoftware(classification.Software)
	if classification.Version != "" {
		p.graph.AddVersion(classification.Version)
	}

	logger.Info("Document classified",
		"type", classification.DocumentType,
		"software", classification.Software,
		"version", classification.Version)

	if classification.DocumentType == usage.DocReleaseNotes {
		record.Mode = ModeMaintenance
		err = p.maintain(ctx, logger, doc, classification, record)
	} else {
		record.Mode = ModeIngest
		err = p.ingest(ctx, logger, doc, classification, record)
	}
	if err != nil {
		return nil, err
	}

	record.Duration = time.Since(started)
	if reportsTokens {
		record.TokensUsed = reporter.TokensUsed() - tokensBefore
	}
	documentsProcessed.WithLabelValues(string(record.Mode)).Inc()
	runDuration.WithLabelValues(string(record.Mode)).Observe(record.Duration.Seconds())

	logger.Info("Pipeline run complete",
		"mode", record.Mode,
		"triples_added", record.TriplesAdded,
		"tokens_used", record.TokensUsed,
		"duration", record.Duration)

	return record, nil
}

// degrade handles a stage failure under the degrade policy. It returns the
// error to propagate (nil unless fail-fast).
func (p *Pipeline) degrade(logger *slog.Logger, record *RunRecord, stage string, err error) error {
	if p.failFast {
		return fmt.Errorf("%s: %w", stage, err)
	}
	logger.Warn("Stage failed, continuing with empty result", "stage", stage, "error", err)
	stageFailures.WithLabelValues(stage).Inc()
	record.Degraded = append(record.Degraded, stage)
	return nil
}

// dedupeEntities collapses entities by case-insensitive display name,
// keeping the first occurrence. UI-element extraction and feature
// extraction over overlapping segments routinely re-find the same entity.
func dedupeEntities(entities []graph.Entity) []graph.Entity {
	seen := make(map[string]struct{}, len(entities))
	out := entities[:0:0]
	for _, e := range entities {
		key := strings.ToLower(e.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
