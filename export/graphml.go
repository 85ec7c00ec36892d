package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/karma/graph"
)

// GraphML renders the graph for visualization tools. Entities become nodes
// keyed by normalized name; triples become directed edges. Triple endpoints
// with no registered entity still get a node so no edge dangles.
func GraphML(doc graph.Document) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">` + "\n")
	sb.WriteString(`  <key id="label" for="node" attr.name="label" attr.type="string"/>` + "\n")
	sb.WriteString(`  <key id="type" for="node" attr.name="type" attr.type="string"/>` + "\n")
	sb.WriteString(`  <key id="relation" for="edge" attr.name="relation" attr.type="string"/>` + "\n")
	sb.WriteString(`  <key id="valid_range" for="edge" attr.name="valid_range" attr.type="string"/>` + "\n")
	sb.WriteString(`  <key id="status" for="edge" attr.name="status" attr.type="string"/>` + "\n")
	sb.WriteString(`  <key id="confidence" for="edge" attr.name="confidence" attr.type="double"/>` + "\n")
	sb.WriteString(`  <graph id="G" edgedefault="directed">` + "\n")

	written := make(map[string]bool)
	writeNode := func(id, label, nodeType string) {
		if written[id] {
			return
		}
		written[id] = true
		fmt.Fprintf(&sb, "    <node id=%q>\n", id)
		fmt.Fprintf(&sb, "      <data key=\"label\">%s</data>\n", escapeXML(label))
		if nodeType != "" {
			fmt.Fprintf(&sb, "      <data key=\"type\">%s</data>\n", escapeXML(nodeType))
		}
		sb.WriteString("    </node>\n")
	}

	for _, e := range doc.Entities {
		writeNode(graph.NormalizeName(e.Name), e.Name, string(e.Type))
	}
	for _, t := range doc.Triples {
		writeNode(graph.NormalizeName(t.Head), t.Head, string(t.HeadType))
		writeNode(graph.NormalizeName(t.Tail), t.Tail, string(t.TailType))
	}

	for i, t := range doc.Triples {
		fmt.Fprintf(&sb, "    <edge id=\"e%d\" source=%q target=%q>\n",
			i, graph.NormalizeName(t.Head), graph.NormalizeName(t.Tail))
		fmt.Fprintf(&sb, "      <data key=\"relation\">%s</data>\n", escapeXML(string(t.Relation)))
		if t.ValidRange != "" {
			fmt.Fprintf(&sb, "      <data key=\"valid_range\">%s</data>\n", escapeXML(t.ValidRange))
		}
		fmt.Fprintf(&sb, "      <data key=\"status\">%s</data>\n", escapeXML(string(t.Status)))
		fmt.Fprintf(&sb, "      <data key=\"confidence\">%.2f</data>\n", t.Confidence)
		sb.WriteString("    </edge>\n")
	}

	sb.WriteString("  </graph>\n")
	sb.WriteString("</graphml>\n")
	return sb.String()
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
