package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		badge    badgeFlags
		text     string
		textFile string
	)
	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a schema with one name badge and its schema text",
		Example: `  entityschema create E1 --lang en --label "human" --alias person --text-file human.shex
  entityschema create E2 --label "" --text "<empty> {}"`,
		Args: exactArgs(1),
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

			rev, err := ed.Create(id, badge.lang, badge.badge(), schemaText)
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, true)
		},
	}
	badge.register(cmd)
	cmd.Flags().StringVar(&text, "text", "", "schema text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "read schema text from file (- for stdin)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <id> <file>",
		Short: "Create a schema from a JSON document",
		Long: "Create a schema from a JSON object with labels, descriptions, aliases and schemaText.\n" +
			"Use - to read the document from standard input.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			data, err := readFileOrStdin(cmd, args[1])
			if err != nil {
				return err
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				return userError(fmt.Errorf("parse %s: %w", args[1], err))
			}

			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			rev, err := ed.Import(id, raw)
			if err != nil {
				return err
			}
			return a.printWriteResult(cmd, rev, true)
		},
	}
}
