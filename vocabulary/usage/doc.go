// Package usage defines the controlled vocabulary for software-usage
// knowledge graphs: entity types, relation types, document types, triple
// lifecycle statuses, and change types.
//
// Each enumeration is a distinct Go type with an explicit wire-string
// mapping, decoupling the in-memory representation from serialized values.
// Parse functions accept the wire strings and map anything unrecognized to
// the Unknown (or zero) variant rather than failing.
package usage
