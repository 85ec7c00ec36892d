package pipeline

import (
	"context"
	"log/slog"

	"github.com/c360studio/karma/extract"
	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/source"
	"github.com/c360studio/karma/vocabulary/usage"
)

// ingest is the extraction flow for documentation that teaches usage:
// segment, extract entities and procedures per segment, extract
// relationships, resolve versions, then integrate into the graph.
func (p *Pipeline) ingest(ctx context.Context, logger *slog.Logger, doc source.Document, c extract.Classification, record *RunRecord) error {
	segments := source.Segment(doc.Text, p.maxSegmentLength)
	record.Segments = len(segments)
	logger.Info("Processing text segments", "segments", len(segments))

	var entities []graph.Entity
	var procedures []graph.Procedure

	for _, segment := range segments {
		ui, err := p.service.ExtractUIElements(ctx, segment, c.Software)
		if err != nil {
			if err := p.degrade(logger, record, "ui_elements", err); err != nil {
				return err
			}
		}
		entities = append(entities, ui...)

		features, err := p.service.ExtractFeatures(ctx, segment, c.Software)
		if err != nil {
			if err := p.degrade(logger, record, "features", err); err != nil {
				return err
			}
		}
		entities = append(entities, features...)

		procs, err := p.service.ExtractProcedures(ctx, segment, c.Software)
		if err != nil {
			if err := p.degrade(logger, record, "procedures", err); err != nil {
				return err
			}
		}
		procedures = append(procedures, procs...)
	}

	entities = dedupeEntities(entities)
	record.EntitiesExtracted = len(entities)
	record.ProceduresExtracted = len(procedures)
	logger.Info("Extraction complete",
		"entities", len(entities),
		"procedures", len(procedures))

	var triples []graph.Triple
	for _, segment := range segments {
		rels, err := p.service.ExtractRelationships(ctx, segment, entities)
		if err != nil {
			if err := p.degrade(logger, record, "relationships", err); err != nil {
				return err
			}
		}
		triples = append(triples, rels...)
	}

	// Procedures contribute structural triples alongside the extracted
	// relationships; duplicates collapse at integration.
	for _, proc := range procedures {
		triples = append(triples, graph.DeriveTriples(proc)...)
	}

	logger.Info("Relationships extracted", "triples", len(triples))

	resolved, err := p.service.ResolveVersions(ctx, triples, doc.Text, c.Version)
	if err != nil {
		if err := p.degrade(logger, record, "versions", err); err != nil {
			return err
		}
		// Unversioned triples are still knowledge.
		resolved = triples
	}

	toAdd, toFlag := p.engine.Integrate(resolved, p.graph.Triples.All())

	p.commit(doc, c, entities, procedures, toAdd, toFlag)

	record.TriplesAdded = len(toAdd)
	record.TriplesFlagged = len(toFlag)
	triplesAdded.Add(float64(len(toAdd)))

	logger.Info("Knowledge integrated",
		"added", len(toAdd),
		"flagged", len(toFlag))

	return nil
}

// commit writes an ingest run's results into the graph. Entity and
// procedure registration are first-wins; flagged triples are committed in
// needs-review state rather than dropped.
func (p *Pipeline) commit(doc source.Document, c extract.Classification, entities []graph.Entity, procedures []graph.Procedure, toAdd, toFlag []graph.Triple) {
	for _, e := range entities {
		p.graph.Entities.Register(e)
	}
	for _, proc := range procedures {
		p.graph.Procedures.Add(proc)
	}

	for i := range toAdd {
		stampProvenance(&toAdd[i], doc, c)
	}
	p.graph.Triples.Append(toAdd...)

	for i := range toFlag {
		stampProvenance(&toFlag[i], doc, c)
		toFlag[i].Status = usage.StatusNeedsReview
	}
	p.graph.Triples.Append(toFlag...)
}

// stampProvenance fills source metadata a triple is missing.
func stampProvenance(t *graph.Triple, doc source.Document, c extract.Classification) {
	if t.SourceDocument == "" {
		t.SourceDocument = doc.Name
	}
	if t.SourceDate == "" {
		t.SourceDate = c.Date
	}
	if t.Software == "" {
		t.Software = c.Software
	}
	if t.Status == "" {
		t.Status = usage.StatusActive
	}
}
