package pipeline

import (
	"context"
	"log/slog"

	"github.com/c360studio/karma/extract"
	"github.com/c360studio/karma/impact"
	"github.com/c360studio/karma/source"
)

// maintain is the release-notes flow: detect changes, judge their impact on
// existing triples, apply status transitions, and synthesize new triples
// describing the changes.
func (p *Pipeline) maintain(ctx context.Context, logger *slog.Logger, doc source.Document, c extract.Classification, record *RunRecord) error {
	logger.Info("Detecting changes")

	set, err := p.service.DetectChanges(ctx, doc.Text)
	if err != nil {
		if err := p.degrade(logger, record, "changes", err); err != nil {
			return err
		}
		// No changes detected means nothing to maintain; the run still
		// succeeds.
		return nil
	}

	// The classifier's version wins over the change detector's: it saw the
	// whole document head, the detector only inferred from change lines.
	version := c.Version
	if version == "" {
		version = set.Version
	}
	if version != "" {
		p.graph.AddVersion(version)
		record.Version = version
	}

	record.ChangesDetected = len(set.Changes)
	logger.Info("Changes detected", "changes", len(set.Changes), "version", version)

	assessments, err := p.service.AnalyzeImpact(ctx, set.Changes, p.graph.Triples.All())
	if err != nil {
		if err := p.degrade(logger, record, "impact", err); err != nil {
			return err
		}
		assessments = nil
	}

	report := impact.Apply(p.graph.Triples, assessments, version)
	record.TriplesDeprecated = len(report.Deprecated)
	record.TriplesReviewed = report.Flagged
	triplesDeprecated.Add(float64(len(report.Deprecated)))

	logger.Info("Impact applied",
		"deprecated", len(report.Deprecated),
		"flagged", report.Flagged)

	newTriples, newEntities := impact.Synthesize(set.Changes, version, p.graph.Software())

	for _, e := range newEntities {
		p.graph.Entities.Register(e)
	}
	for i := range newTriples {
		stampProvenance(&newTriples[i], doc, c)
	}
	p.graph.Triples.Append(newTriples...)

	record.TriplesAdded = len(newTriples)
	triplesAdded.Add(float64(len(newTriples)))

	logger.Info("Change knowledge added", "triples", len(newTriples))

	return nil
}
