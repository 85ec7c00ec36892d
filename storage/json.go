// Package storage persists knowledge graphs. JSON is the primary format;
// SQLite provides a queryable mirror of the same data.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/karma/graph"
)

// SaveGraph writes a graph document as indented JSON. The parent directory
// is created if missing, and the write goes through a temp file so a crash
// cannot leave a truncated graph behind.
func SaveGraph(path string, doc graph.Document) error {
	return writeJSON(path, doc)
}

// LoadGraph reads a graph document from a JSON file.
func LoadGraph(path string) (graph.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Document{}, fmt.Errorf("read graph: %w", err)
	}

	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return graph.Document{}, fmt.Errorf("parse graph %s: %w", path, err)
	}
	return doc, nil
}

// SaveArtifact writes any run artifact (run records, intermediate outputs)
// as indented JSON.
func SaveArtifact(path string, v any) error {
	return writeJSON(path, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".karma-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
