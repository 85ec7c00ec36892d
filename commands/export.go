package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/karma/export"
	"github.com/c360studio/karma/graph"
	"github.com/spf13/cobra"
)

func newExportCmd(env *environment) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the knowledge graph",
		Long: func() string {
			var sb strings.Builder
			sb.WriteString("Export renders the knowledge graph in an interchange format.\n\nFormats:\n")
			for _, info := range export.FormatRegistry {
				fmt.Fprintf(&sb, "  %-10s %s\n", info.Name, info.Description)
			}
			return sb.String()
		}(),
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

			if outDir == "" {
				outDir = cfg.Storage.ExportDir
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return runExport(g, f, outDir)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv, graphml, turtle, ntriples)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: storage.export_dir)")

	return cmd
}

func runExport(g *graph.Graph, format export.Format, outDir string) error {
	doc := g.Export()

	if format == export.FormatCSV {
		if err := export.WriteCSV(outDir, doc); err != nil {
			return err
		}
		fmt.Printf("Wrote entities.csv, triples.csv, procedures.csv to %s\n", outDir)
		return nil
	}

	out, err := export.Render(doc, format)
	if err != nil {
		return err
	}

	info, _ := export.GetFormatInfo(format)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, "knowledge_graph"+info.Extension)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
