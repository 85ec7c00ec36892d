package graph

// Document is the persistence form of a knowledge graph. Exporting and
// re-importing a graph reproduces identical entity, procedure, and triple
// counts and identical statistics.
type Document struct {
	Software   string      `json:"software"`
	Versions   []string    `json:"versions"`
	Entities   []Entity    `json:"entities"`
	Procedures []Procedure `json:"procedures"`
	Triples    []Triple    `json:"triples"`
	Statistics Statistics  `json:"statistics"`
}

// Export snapshots the graph into its persistence form.
func (g *Graph) Export() Document {
	return Document{
		Software:   g.software,
		Versions:   g.Versions(),
		Entities:   g.Entities.All(),
		Procedures: g.Procedures.All(),
		Triples:    append([]Triple(nil), g.Triples.All()...),
		Statistics: g.Stats(),
	}
}

// Import rebuilds a graph from its persistence form.
func Import(doc Document, opts ...Option) *Graph {
	g := New(opts...)
	g.SetSoftware(doc.Software)
	for _, v := range doc.Versions {
		g.AddVersion(v)
	}
	for _, e := range doc.Entities {
		g.Entities.Register(e)
	}
	for _, p := range doc.Procedures {
		g.Procedures.Add(p)
	}
	g.Triples.Append(doc.Triples...)
	return g
}
