package cmd

import (
	"fmt"

	"github.com/dendrascience/tabslice/internal/config"
	"github.com/dendrascience/tabslice/store"
	"github.com/dendrascience/tabslice/version"
	"github.com/spf13/cobra"
)

// globalOptions carries the persistent flags and the loaded configuration
// to every subcommand.
type globalOptions struct {
	configPath string
	storeDir   string
	cfg        *config.Config
}

func (g *globalOptions) settings() *config.Config {
	if g.cfg == nil {
		return config.DefaultConfig()
	}
	return g.cfg
}

// openNode opens the configured store and returns the node for key, falling
// back to the configured default key.
func (g *globalOptions) openNode(key string) (*store.Node, error) {
	cfg := g.settings()
	if key == "" {
		key = cfg.DefaultKey
	}
	s, err := store.New(cfg.StoreDir, store.WithCompression(cfg.Compression))
	if err != nil {
		return nil, err
	}
	return s.Node(key)
}

// NewRootCmd creates and returns the root cobra command for the tabslice CLI.
// It sets up all subcommands, command groups, and the persistent flags.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "tabslice",
		Short: "tabslice - slice labeled tables by named levels",
		Long: `tabslice keeps labeled tables in a local parquet store and slices them
by named index levels.

Rows and columns are addressed by ordered, named levels (for example
hour_beginning and location). A selector such as --rows location=location1,location5
keeps only the matching positions and leaves every other level unconstrained.`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading %s: %w", opts.configPath, err)
			}
			if opts.storeDir != "" {
				cfg.StoreDir = opts.storeDir
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.storeDir, "store", "", "Store directory (overrides store_dir from the config)")

	groupTables := "tables"
	groupStore := "store"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupTables,
		Title: "Table Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupStore,
		Title: "Store Commands",
	})

	sliceCmd := NewSliceCmd(opts)
	exportCmd := NewExportCmd(opts)
	seedCmd := NewSeedCmd(opts)
	inspectCmd := NewInspectCmd(opts)

	sliceCmd.GroupID = groupTables
	exportCmd.GroupID = groupTables
	seedCmd.GroupID = groupStore
	inspectCmd.GroupID = groupStore

	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
