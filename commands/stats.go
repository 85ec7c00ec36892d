package commands

import (
	"fmt"
	"sort"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge graph statistics",
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
			printStats(g)
			return nil
		},
	}
}

func printStats(g *graph.Graph) {
	stats := g.Stats()

	color.Cyan("Knowledge graph: %s", g.Software())
	if versions := g.Versions(); len(versions) > 0 {
		fmt.Printf("Versions: %v\n", versions)
	}
	fmt.Println()

	fmt.Printf("Entities:    %d\n", stats.TotalEntities)
	fmt.Printf("Procedures:  %d\n", stats.TotalProcedures)
	fmt.Printf("Triples:     %d\n", stats.TotalTriples)

	byStatus := g.CountByStatus()
	if len(byStatus) > 0 {
		fmt.Println("\nBy status:")
		statuses := make([]string, 0, len(byStatus))
		for s := range byStatus {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			count := byStatus[usage.TripleStatus(s)]
			switch s {
			case "active":
				color.Green("  %-14s %d", s, count)
			case "deprecated":
				color.Red("  %-14s %d", s, count)
			case "needs_review":
				color.Yellow("  %-14s %d", s, count)
			default:
				fmt.Printf("  %-14s %d\n", s, count)
			}
		}
	}

	byRelation := g.CountByRelation()
	if len(byRelation) > 0 {
		fmt.Println("\nBy relation:")
		type relCount struct {
			name  string
			count int
		}
		rels := make([]relCount, 0, len(byRelation))
		for r, n := range byRelation {
			rels = append(rels, relCount{string(r), n})
		}
		sort.Slice(rels, func(i, j int) bool {
			if rels[i].count != rels[j].count {
				return rels[i].count > rels[j].count
			}
			return rels[i].name < rels[j].name
		})
		for _, r := range rels {
			fmt.Printf("  %-20s %d\n", r.name, r.count)
		}
	}
}
