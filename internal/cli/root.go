// Package cli implements the alchemist command line: it renders ellipsized
// page ranges and paginates the article table through gorm or bun.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/simp-lee/alchemist/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

// configLoader loads the configuration named by the --config flag.
type configLoader func() (*config.Config, error)

// NewRootCmd creates the root command with the pages, list, columns and seed
// subcommands.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "alchemist",
		Short:   "Paginate ORM queries from the command line",
		Long:    "alchemist pages through the article table with the same engine the web server uses.",
		Version: version,
		Example: rootCmdExample,
		// Errors are printed once by main.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to configuration file")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}
	cmd.AddCommand(
		newPagesCmd(),
		newListCmd(load),
		newColumnsCmd(load),
		newSeedCmd(load),
	)
	return cmd
}

const rootCmdExample = `  # Show the navigation for page 6 of 20
  alchemist pages --current 6 --total 20

  # Insert sample rows, then read the second page through bun
  alchemist seed --count 95
  alchemist list --page 2 --orm bun

  # Filter and sort
  alchemist list --author ada --sort title:asc

  # Show the columns mapped for the article model
  alchemist columns`
