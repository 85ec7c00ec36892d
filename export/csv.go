package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/c360studio/karma/graph"
)

// WriteCSV writes entities.csv, triples.csv, and procedures.csv into dir.
// The directory is created if missing.
func WriteCSV(dir string, doc graph.Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := writeCSVFile(filepath.Join(dir, "entities.csv"), entityRows(doc.Entities)); err != nil {
		return err
	}
	if err := writeCSVFile(filepath.Join(dir, "triples.csv"), tripleRows(doc.Triples)); err != nil {
		return err
	}
	return writeCSVFile(filepath.Join(dir, "procedures.csv"), procedureRows(doc.Procedures))
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func entityRows(entities []graph.Entity) [][]string {
	rows := [][]string{{
		"entity_id", "name", "entity_type", "description", "parent_path",
		"software", "version_introduced", "version_deprecated", "aliases",
	}}
	for _, e := range entities {
		rows = append(rows, []string{
			e.ID, e.Name, string(e.Type), e.Description, e.ParentPath,
			e.Software, e.VersionIntroduced, e.VersionDeprecated,
			strings.Join(e.Aliases, ";"),
		})
	}
	return rows
}

func tripleRows(triples []graph.Triple) [][]string {
	rows := [][]string{{
		"head", "relation", "tail", "head_type", "tail_type",
		"introduced_version", "deprecated_version", "valid_version_range",
		"confidence", "source_document", "source_date", "step_order",
		"status", "software",
	}}
	for _, t := range triples {
		rows = append(rows, []string{
			t.Head, string(t.Relation), t.Tail, string(t.HeadType), string(t.TailType),
			t.IntroducedVersion, t.DeprecatedVersion, t.ValidRange,
			strconv.FormatFloat(t.Confidence, 'f', 2, 64),
			t.SourceDocument, t.SourceDate, strconv.Itoa(t.StepOrder),
			string(t.Status), t.Software,
		})
	}
	return rows
}

func procedureRows(procedures []graph.Procedure) [][]string {
	rows := [][]string{{
		"procedure_id", "name", "description", "steps", "prerequisites",
		"outcome", "software", "version_range",
	}}
	for _, p := range procedures {
		rows = append(rows, []string{
			p.ID, p.Name, p.Description,
			strings.Join(p.Steps, " | "),
			strings.Join(p.Prerequisites, " | "),
			p.Outcome, p.Software, p.VersionRange,
		})
	}
	return rows
}
