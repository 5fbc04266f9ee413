package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/entityschema/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Write a default config.yaml if none exists, then create the data directory and revision log.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return err
			}
			// Only an explicit --data-dir is recorded in the file.
			dataDir := ""
			if a.flags.dataDir != "" {
				dataDir = a.config.DataDir
			}
			written, err := writeConfigIfMissing(configDir, configFile{
				Backend:            a.config.Backend,
				DataDir:            dataDir,
				MaxNameBadgeChars:  a.config.MaxNameBadgeChars,
				MaxSchemaTextBytes: a.config.MaxSchemaTextBytes,
				LogLevel:           a.config.LogLevel,
				ExtraLanguages:     a.config.ExtraLanguages,
			})
			if err != nil {
				return err
			}

			_, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			closeStore()

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "wrote %s/%s\n", configDir, paths.ConfigFileName)
			}
			fmt.Fprintf(out, "entityschema initialized in %s\n", a.config.DataDir)
			return nil
		},
	}
}
