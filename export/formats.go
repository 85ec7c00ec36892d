// Package export renders knowledge graphs in interchange formats.
package export

import (
	"fmt"

	"github.com/c360studio/karma/graph"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatCSV produces one CSV file each for entities, triples, and
	// procedures.
	FormatCSV Format = "csv"

	// FormatGraphML produces a GraphML (.graphml) document.
	FormatGraphML Format = "graphml"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - entities, triples, and procedures as separate tables",
	},
	FormatGraphML: {
		Name:        FormatGraphML,
		MIMEType:    "application/graphml+xml",
		Extension:   ".graphml",
		Description: "GraphML - XML graph format for visualization tools",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format: %s", s)
	}
	return f, nil
}

// Render serializes a graph document to a single-document format. CSV is
// multi-file and goes through WriteCSV instead.
func Render(doc graph.Document, format Format) (string, error) {
	switch format {
	case FormatGraphML:
		return GraphML(doc), nil
	case FormatTurtle:
		return NewRDFExporter(doc).Turtle(), nil
	case FormatNTriples:
		return NewRDFExporter(doc).NTriples(), nil
	case FormatCSV:
		return "", fmt.Errorf("csv export writes multiple files, use WriteCSV")
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
