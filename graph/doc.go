// Package graph holds the versioned software-usage knowledge graph: typed
// entities, versioned triples, procedures, and the aggregate that owns them.
//
// Triples reference entities by name, not by id. This is a deliberate
// open-world design: a triple may assert a fact about a name the registry
// has never seen. Name resolution against the registry happens at read
// time through Registry.Lookup.
//
// The aggregate is mutated only through the integrate and impact engines
// (driven by the pipeline orchestrator); callers query it through
// ActiveForVersion, Outdated, and Export.
package graph
