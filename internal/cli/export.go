package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/entityschema/internal/sqlite"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every revision to a JSONL file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := sqlite.NewBackend(a.logger)
			if err := store.Attach(a.config); err != nil {
				return fmt.Errorf("attach store: %w", err)
			}
			defer store.Detach()

			n, err := store.Export(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d revisions to %s\n", n, args[0])
			return nil
		},
	}
}
