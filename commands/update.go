package commands

import (
	"github.com/c360studio/karma/pipeline"
	"github.com/c360studio/karma/vocabulary/usage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newUpdateCmd(env *environment) *cobra.Command {
	var runDir string

	cmd := &cobra.Command{
		Use:   "update <file|url|glob>...",
		Short: "Apply release notes to the knowledge graph",
		Long: `Update processes release notes: changes are detected, their impact on
existing triples is assessed, invalidated knowledge is deprecated, and
new triples describing the changes are added.

Routing is driven by classification, so this is the same pipeline as
ingest; update additionally warns when a document was not recognized as
release notes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.buildApp()
			if err != nil {
				return err
			}
			return runDocuments(cmd, a, args, runDir, func(r *pipeline.RunRecord) {
				if r.DocumentType != usage.DocReleaseNotes {
					color.Yellow("  ! %s classified as %s, processed as ingest",
						r.Document, r.DocumentType)
				}
			})
		},
	}

	cmd.Flags().StringVar(&runDir, "run-dir", "", "Directory for per-run JSON artifacts (default: none)")

	return cmd
}
