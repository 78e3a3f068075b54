package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the index status",
	Long:  `Shows the configured directories, embedding model and vector store, and whether an index is loaded.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := initServices(cmd.Context(), false); err != nil {
		return err
	}

	status, err := statusService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Index status"))
	fmt.Fprintln(out, row("Data directory", status.DataDir))
	fmt.Fprintln(out, row("Index directory", status.IndexDir))
	fmt.Fprintln(out, row("Store", status.Backend.Description()))
	fmt.Fprintln(out, row("Embedding model", status.EmbeddingModel))

	if !status.Ready {
		fmt.Fprintln(out, row("Index", warnStyle.Render("not created")))
		return nil
	}

	fmt.Fprintln(out, row("Index", okStyle.Render("ready")))
	if status.Index.Model != "" {
		fmt.Fprintln(out, row("Index model", status.Index.Model))
	}
	fmt.Fprintln(out, row("Dimensions", strconv.Itoa(status.Index.Dimensions)))
	fmt.Fprintln(out, row("Records", strconv.Itoa(status.Index.Records)))
	return nil
}
