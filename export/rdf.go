package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/karma/graph"
)

// RDF namespaces for the usage vocabulary. Entity IRIs hang off
// EntityNamespace by derived entity id.
const (
	Namespace       = "https://karma.dev/usage#"
	EntityNamespace = "https://karma.dev/entity/"
)

// RDFExporter serializes a graph document as RDF. Entities become typed
// resources; triples become predicate assertions between entity IRIs, with
// relation names from the usage vocabulary.
type RDFExporter struct {
	doc      graph.Document
	prefixes map[string]string
}

// NewRDFExporter creates an exporter over a graph snapshot.
func NewRDFExporter(doc graph.Document) *RDFExporter {
	return &RDFExporter{
		doc:      doc,
		prefixes: defaultPrefixes(),
	}
}

func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"usage":  Namespace,
		"entity": EntityNamespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Turtle serializes to Turtle format.
func (e *RDFExporter) Turtle() string {
	var sb strings.Builder

	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, entity := range e.doc.Entities {
		e.writeEntityTurtle(&sb, entity)
		sb.WriteString("\n")
	}

	for _, t := range e.doc.Triples {
		fmt.Fprintf(&sb, "<%s> <%s%s> <%s> .\n",
			nameToIRI(t.Head), Namespace, t.Relation, nameToIRI(t.Tail))
	}

	return sb.String()
}

func (e *RDFExporter) writeEntityTurtle(sb *strings.Builder, entity graph.Entity) {
	fmt.Fprintf(sb, "<%s>\n", entityIRI(entity))
	fmt.Fprintf(sb, "    a <%s%s> ;\n", Namespace, entity.Type)

	if entity.Description != "" {
		fmt.Fprintf(sb, "    rdfs:comment \"%s\" ;\n", escapeString(entity.Description))
	}
	if entity.VersionIntroduced != "" {
		fmt.Fprintf(sb, "    usage:versionIntroduced \"%s\" ;\n", escapeString(entity.VersionIntroduced))
	}
	fmt.Fprintf(sb, "    rdfs:label \"%s\" .\n", escapeString(entity.Name))
}

// NTriples serializes to N-Triples format.
func (e *RDFExporter) NTriples() string {
	var sb strings.Builder

	rdfType := "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfsLabel := "http://www.w3.org/2000/01/rdf-schema#label"

	for _, entity := range e.doc.Entities {
		iri := entityIRI(entity)
		fmt.Fprintf(&sb, "<%s> <%s> <%s%s> .\n", iri, rdfType, Namespace, entity.Type)
		fmt.Fprintf(&sb, "<%s> <%s> \"%s\" .\n", iri, rdfsLabel, escapeString(entity.Name))
	}

	for _, t := range e.doc.Triples {
		fmt.Fprintf(&sb, "<%s> <%s%s> <%s> .\n",
			nameToIRI(t.Head), Namespace, t.Relation, nameToIRI(t.Tail))
	}

	return sb.String()
}

func entityIRI(e graph.Entity) string {
	return nameToIRI(e.Name)
}

// nameToIRI converts a display name to an IRI. Triple endpoints carry names
// rather than ids, so IRIs use the normalized name throughout; a registered
// entity and the same name appearing only in triples converge on one IRI.
func nameToIRI(name string) string {
	return EntityNamespace + graph.NormalizeName(name)
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
