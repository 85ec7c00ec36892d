package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/c360studio/karma/graph"
	_ "modernc.org/sqlite"
)

// schema mirrors the JSON document: one knowledge_graphs row per saved
// snapshot, child rows keyed by kg_id.
const schema = `
CREATE TABLE IF NOT EXISTS knowledge_graphs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	software TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	metadata TEXT
);

CREATE TABLE IF NOT EXISTS versions (
	kg_id INTEGER,
	version TEXT,
	FOREIGN KEY (kg_id) REFERENCES knowledge_graphs(id)
);

CREATE TABLE IF NOT EXISTS entities (
	kg_id INTEGER,
	entity_id TEXT,
	name TEXT,
	entity_type TEXT,
	description TEXT,
	parent_path TEXT,
	software TEXT,
	version_introduced TEXT,
	version_deprecated TEXT,
	aliases TEXT,
	PRIMARY KEY (kg_id, entity_id),
	FOREIGN KEY (kg_id) REFERENCES knowledge_graphs(id)
);

CREATE TABLE IF NOT EXISTS procedures (
	kg_id INTEGER,
	procedure_id TEXT,
	name TEXT,
	description TEXT,
	steps TEXT,
	prerequisites TEXT,
	outcome TEXT,
	software TEXT,
	version_range TEXT,
	PRIMARY KEY (kg_id, procedure_id),
	FOREIGN KEY (kg_id) REFERENCES knowledge_graphs(id)
);

CREATE TABLE IF NOT EXISTS triples (
	kg_id INTEGER,
	head TEXT,
	relation TEXT,
	tail TEXT,
	head_type TEXT,
	tail_type TEXT,
	introduced_version TEXT,
	deprecated_version TEXT,
	valid_version_range TEXT,
	confidence REAL,
	source_document TEXT,
	source_date TEXT,
	step_order INTEGER,
	status TEXT,
	software TEXT,
	FOREIGN KEY (kg_id) REFERENCES knowledge_graphs(id)
);
`

// SQLiteStore persists graph snapshots to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save writes a graph snapshot and returns its id. Each call creates a new
// snapshot; old snapshots stay queryable.
func (s *SQLiteStore) Save(ctx context.Context, doc graph.Document) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	metadata, err := json.Marshal(doc.Statistics)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO knowledge_graphs (software, metadata) VALUES (?, ?)`,
		doc.Software, string(metadata))
	if err != nil {
		return 0, fmt.Errorf("insert graph: %w", err)
	}
	kgID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, v := range doc.Versions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO versions (kg_id, version) VALUES (?, ?)`, kgID, v); err != nil {
			return 0, fmt.Errorf("insert version: %w", err)
		}
	}

	for _, e := range doc.Entities {
		aliases, err := json.Marshal(e.Aliases)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entities
			 (kg_id, entity_id, name, entity_type, description, parent_path,
			  software, version_introduced, version_deprecated, aliases)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			kgID, e.ID, e.Name, string(e.Type), e.Description, e.ParentPath,
			e.Software, e.VersionIntroduced, e.VersionDeprecated, string(aliases)); err != nil {
			return 0, fmt.Errorf("insert entity %s: %w", e.ID, err)
		}
	}

	for _, p := range doc.Procedures {
		steps, err := json.Marshal(p.Steps)
		if err != nil {
			return 0, err
		}
		prereqs, err := json.Marshal(p.Prerequisites)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO procedures
			 (kg_id, procedure_id, name, description, steps, prerequisites,
			  outcome, software, version_range)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			kgID, p.ID, p.Name, p.Description, string(steps), string(prereqs),
			p.Outcome, p.Software, p.VersionRange); err != nil {
			return 0, fmt.Errorf("insert procedure %s: %w", p.ID, err)
		}
	}

	for _, t := range doc.Triples {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO triples
			 (kg_id, head, relation, tail, head_type, tail_type,
			  introduced_version, deprecated_version, valid_version_range,
			  confidence, source_document, source_date, step_order, status, software)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			kgID, t.Head, string(t.Relation), t.Tail, string(t.HeadType), string(t.TailType),
			t.IntroducedVersion, t.DeprecatedVersion, t.ValidRange,
			t.Confidence, t.SourceDocument, t.SourceDate, t.StepOrder,
			string(t.Status), t.Software); err != nil {
			return 0, fmt.Errorf("insert triple: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return kgID, nil
}

// LoadLatest reads the most recently saved snapshot.
func (s *SQLiteStore) LoadLatest(ctx context.Context) (graph.Document, error) {
	var kgID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM knowledge_graphs ORDER BY id DESC LIMIT 1`).Scan(&kgID)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.Document{}, ErrNotFound
	}
	if err != nil {
		return graph.Document{}, err
	}
	return s.Load(ctx, kgID)
}

// Load reads the snapshot with the given id.
func (s *SQLiteStore) Load(ctx context.Context, kgID int64) (graph.Document, error) {
	var doc graph.Document

	err := s.db.QueryRowContext(ctx,
		`SELECT software FROM knowledge_graphs WHERE id = ?`, kgID).Scan(&doc.Software)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.Document{}, fmt.Errorf("load graph %d: %w", kgID, ErrNotFound)
	}
	if err != nil {
		return graph.Document{}, fmt.Errorf("load graph %d: %w", kgID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT version FROM versions WHERE kg_id = ?`, kgID)
	if err != nil {
		return graph.Document{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return graph.Document{}, err
		}
		doc.Versions = append(doc.Versions, v)
	}
	if err := rows.Err(); err != nil {
		return graph.Document{}, err
	}

	if doc.Entities, err = s.loadEntities(ctx, kgID); err != nil {
		return graph.Document{}, err
	}
	if doc.Procedures, err = s.loadProcedures(ctx, kgID); err != nil {
		return graph.Document{}, err
	}
	if doc.Triples, err = s.loadTriples(ctx, kgID); err != nil {
		return graph.Document{}, err
	}

	doc.Statistics = graph.Import(doc).Stats()
	return doc, nil
}

func (s *SQLiteStore) loadEntities(ctx context.Context, kgID int64) ([]graph.Entity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, name, entity_type, description, parent_path,
		        software, version_introduced, version_deprecated, aliases
		 FROM entities WHERE kg_id = ? ORDER BY rowid`, kgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []graph.Entity
	for rows.Next() {
		var e graph.Entity
		var aliases string
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.Description, &e.ParentPath,
			&e.Software, &e.VersionIntroduced, &e.VersionDeprecated, &aliases); err != nil {
			return nil, err
		}
		if aliases != "" {
			if err := json.Unmarshal([]byte(aliases), &e.Aliases); err != nil {
				return nil, fmt.Errorf("decode aliases for %s: %w", e.ID, err)
			}
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (s *SQLiteStore) loadProcedures(ctx context.Context, kgID int64) ([]graph.Procedure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT procedure_id, name, description, steps, prerequisites,
		        outcome, software, version_range
		 FROM procedures WHERE kg_id = ? ORDER BY rowid`, kgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var procedures []graph.Procedure
	for rows.Next() {
		var p graph.Procedure
		var steps, prereqs string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &steps, &prereqs,
			&p.Outcome, &p.Software, &p.VersionRange); err != nil {
			return nil, err
		}
		if steps != "" {
			if err := json.Unmarshal([]byte(steps), &p.Steps); err != nil {
				return nil, fmt.Errorf("decode steps for %s: %w", p.ID, err)
			}
		}
		if prereqs != "" {
			if err := json.Unmarshal([]byte(prereqs), &p.Prerequisites); err != nil {
				return nil, fmt.Errorf("decode prerequisites for %s: %w", p.ID, err)
			}
		}
		procedures = append(procedures, p)
	}
	return procedures, rows.Err()
}

func (s *SQLiteStore) loadTriples(ctx context.Context, kgID int64) ([]graph.Triple, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT head, relation, tail, head_type, tail_type,
		        introduced_version, deprecated_version, valid_version_range,
		        confidence, source_document, source_date, step_order, status, software
		 FROM triples WHERE kg_id = ? ORDER BY rowid`, kgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triples []graph.Triple
	for rows.Next() {
		var t graph.Triple
		if err := rows.Scan(&t.Head, &t.Relation, &t.Tail, &t.HeadType, &t.TailType,
			&t.IntroducedVersion, &t.DeprecatedVersion, &t.ValidRange,
			&t.Confidence, &t.SourceDocument, &t.SourceDate, &t.StepOrder,
			&t.Status, &t.Software); err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, rows.Err()
}
