package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tools"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest the data directory",
	Long: `Loads every PDF, TXT and Markdown file under the data directory, splits
it into overlapping chunks, embeds them and appends them to the index.

Running index twice on the same files stores their chunks twice.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if err := initServices(cmd.Context(), true); err != nil {
		return err
	}

	surface := tools.New(ingestService, queryService, appSettings.DataDir)
	fmt.Fprintln(cmd.OutOrStdout(), surface.IndexData(cmd.Context()))
	return nil
}
