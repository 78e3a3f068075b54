// Package cli implements the retrieval-engine command line: the MCP server
// and direct index, search and status commands.
package cli

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	cfgFile string
	verbose bool
	envFile string
)

// Services used by commands. Set by initServices or replaced in tests.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
	statusService driving.StatusService
	appSettings   = domain.DefaultSettings()
	closers       []func() error
)

var rootCmd = &cobra.Command{
	Use:   "retrieval-engine",
	Short: "Index local notes and search them over MCP",
	Long: `retrieval-engine indexes the PDF, TXT and Markdown files of a data
directory into a local vector index and answers similarity queries.

Run "retrieval-engine serve" to expose the index_data and search_notes tools
to MCP clients, or use the index and search commands directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if err := godotenv.Load(envFile); err != nil && envFile != defaultEnvFile {
			return err
		}
		return nil
	},
}

const defaultEnvFile = ".env"

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./retrieval-engine.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with API keys")
}

// SetVersion sets the version reported by the version command and the MCP server.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases any services it started.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// closeServices releases services in reverse order of creation.
func closeServices() {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		errs = append(errs, closers[i]())
	}
	closers = nil
	if err := errors.Join(errs...); err != nil {
		logger.Error("closing services: %v", err)
	}
}
