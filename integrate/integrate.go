// Package integrate merges batches of newly extracted triples into an
// existing triple set without duplication.
package integrate

import (
	"github.com/c360studio/karma/graph"
)

// ConflictDetector is the extension point for flagging triples that
// contradict existing knowledge (for example two active triples asserting
// incompatible values over overlapping version ranges). The default
// detector flags nothing.
type ConflictDetector interface {
	// Conflicts returns true when candidate contradicts existing knowledge.
	Conflicts(candidate graph.Triple, existing []graph.Triple) bool
}

// noConflicts is the parity-preserving default: nothing is ever flagged.
type noConflicts struct{}

func (noConflicts) Conflicts(graph.Triple, []graph.Triple) bool { return false }

// Engine deduplicates and integrates triples.
type Engine struct {
	detector ConflictDetector
}

// Option configures an Engine.
type Option func(*Engine)

// WithConflictDetector installs a conflict detector.
func WithConflictDetector(d ConflictDetector) Option {
	return func(e *Engine) {
		e.detector = d
	}
}

// New creates an integration engine.
func New(opts ...Option) *Engine {
	e := &Engine{detector: noConflicts{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Integrate partitions newTriples into triples to add and triples to flag.
// It is a pure function over its inputs: the caller commits toAdd.
//
// A triple is skipped when its identity key (case-insensitive
// head|relation|tail) already exists, either in existing or earlier in the
// same batch, so in-batch duplicates collapse too.
func (e *Engine) Integrate(newTriples, existing []graph.Triple) (toAdd, toFlag []graph.Triple) {
	seen := make(map[string]struct{}, len(existing)+len(newTriples))
	for _, t := range existing {
		seen[t.Key()] = struct{}{}
	}

	for _, t := range newTriples {
		key := t.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if e.detector.Conflicts(t, existing) {
			toFlag = append(toFlag, t)
			continue
		}
		toAdd = append(toAdd, t)
	}

	return toAdd, toFlag
}
