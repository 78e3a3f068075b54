package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tools"
)

var searchPlain bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed notes",
	Long: `Embeds the query and prints the closest chunks from the index, most
similar first. Use --plain to print the exact search_notes tool reply.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchPlain, "plain", false, "print the search_notes tool reply")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context(), false); err != nil {
		return err
	}

	query := args[0]
	out := cmd.OutOrStdout()

	if searchPlain {
		surface := tools.New(ingestService, queryService, appSettings.DataDir)
		fmt.Fprintln(out, surface.SearchNotes(cmd.Context(), query))
		return nil
	}

	if strings.TrimSpace(query) == "" {
		return errors.New("query must not be empty")
	}

	result, err := queryService.Query(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch {
	case result.IndexMissing:
		fmt.Fprintln(out, warnStyle.Render("No index found. Run `retrieval-engine index` first."))
	case len(result.Snippets) == 0:
		fmt.Fprintln(out, "No results found.")
	default:
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Results for %q", query)))
		for i, snippet := range result.Snippets {
			fmt.Fprintf(out, "[%d]\n%s\n", i+1, snippetStyle.Render(snippet))
		}
	}
	return nil
}
