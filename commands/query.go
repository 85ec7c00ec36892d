package commands

import (
	"fmt"
	"strings"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/version"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newQueryCmd(env *environment) *cobra.Command {
	var (
		relation   string
		atVersion  string
		includeAll bool
	)

	cmd := &cobra.Command{
		Use:   "query <entity>",
		Short: "Query triples about an entity",
		Long: `Query lists triples whose head or tail matches the given entity name
(case-insensitive). By default only active triples are shown; --all
includes deprecated and needs-review triples, and --version restricts
results to facts whose version range contains the given version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := env.logger()
			cfg, err := env.config(logger)
			if err != nil {
				return err
			}
			g, err := openGraph(cfg, logger)
			if err != nil {
				return err
			}
			return runQuery(g, args[0], relation, atVersion, includeAll)
		},
	}

	cmd.Flags().StringVarP(&relation, "relation", "r", "", "Filter by relation type (e.g. located_in)")
	cmd.Flags().StringVarP(&atVersion, "version", "v", "", "Only facts valid at this version")
	cmd.Flags().BoolVarP(&includeAll, "all", "a", false, "Include deprecated and needs-review triples")

	return cmd
}

// filterTriples selects triples touching the named entity, subject to the
// optional relation, version, and status filters.
func filterTriples(g *graph.Graph, entity, relation, atVersion string, includeAll bool) []graph.Triple {
	name := strings.ToLower(entity)

	var matches []graph.Triple
	for _, t := range g.Triples.All() {
		if strings.ToLower(t.Head) != name && strings.ToLower(t.Tail) != name {
			continue
		}
		if relation != "" && string(t.Relation) != relation {
			continue
		}
		if !includeAll && t.Status != usage.StatusActive {
			continue
		}
		if atVersion != "" && !version.Contains(t.ValidRange, atVersion, g.Comparator()) {
			continue
		}
		matches = append(matches, t)
	}
	return matches
}

func runQuery(g *graph.Graph, entity, relation, atVersion string, includeAll bool) error {
	matches := filterTriples(g, entity, relation, atVersion, includeAll)

	if len(matches) == 0 {
		fmt.Printf("No triples found for %q\n", entity)
		return nil
	}

	if e, ok := g.Entities.Lookup(entity); ok {
		color.Cyan("%s (%s)", e.Name, e.Type)
		if e.Description != "" {
			fmt.Println("  " + e.Description)
		}
		fmt.Println()
	}

	for _, t := range matches {
		line := t.String()
		switch t.Status {
		case usage.StatusDeprecated:
			color.Red("  %s  [deprecated in %s]", line, t.DeprecatedVersion)
		case usage.StatusNeedsReview:
			color.Yellow("  %s  [needs review]", line)
		default:
			fmt.Println("  " + line)
		}
	}
	fmt.Printf("\n%d triple(s)\n", len(matches))
	return nil
}
