package cli

import (
	"github.com/spf13/cobra"
)

func newSetBadgeCmd(a *app) *cobra.Command {
	var (
		badge badgeFlags
		base  string
	)
	cmd := &cobra.Command{
		Use:   "set-badge <id>",
		Short: "Replace the label, description and aliases in one language",
		Long: "Replace the name badge in one language. With --base, the edit is merged onto\n" +
			"the latest revision when other edits landed after the base revision.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			rev, changed, err := ed.SetNameBadge(id, base, badge.lang, badge.badge())
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, changed)
		},
	}
	badge.register(cmd)
	cmd.Flags().StringVar(&base, "base", "", "revision the edit started from (default: latest)")
	return cmd
}

func newSetTextCmd(a *app) *cobra.Command {
	var text, textFile, base string
	cmd := &cobra.Command{
		Use:   "set-text <id>",
		Short: "Replace the schema text",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			schemaText, err := readTextInput(cmd, text, textFile)
			if err != nil {
				return err
			}
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			rev, changed, err := ed.SetSchemaText(id, base, schemaText)
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, changed)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "schema text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "read schema text from file (- for stdin)")
	cmd.Flags().StringVar(&base, "base", "", "revision the edit started from (default: latest)")
	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id> <revision>",
		Short: "Revert the change made by a revision",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			rev, changed, err := ed.Undo(id, args[1])
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, changed)
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id> <revision>",
		Short: "Write an old revision's content as the latest revision",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			rev, changed, err := ed.Restore(id, args[1])
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, changed)
		},
	}
}
