package cli

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/entityschema/internal/schemadiff"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		revision  string
		languages []string
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a schema's name badges and schema text",
		Args:  exactArgs(1),
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

			view, err := ed.FullView(id, revision, languages)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, id)
			for _, lang := range slices.Sorted(maps.Keys(view.NameBadges)) {
				formatBadge(out, lang, view.NameBadges[lang])
			}
			fmt.Fprintln(out, "schema text:")
			fmt.Fprintln(out, view.SchemaText)
			return nil
		},
	}
	cmd.Flags().StringVar(&revision, "revision", "", "revision to show (default: latest)")
	cmd.Flags().StringSliceVar(&languages, "lang", nil, "languages to always include")
	return cmd
}

// diffEntry is the JSON form of one diff operation.
type diffEntry struct {
	Path []string `json:"path"`
	Op   string   `json:"op"`
	Old  *string  `json:"old,omitempty"`
	New  *string  `json:"new,omitempty"`
}

func diffEntries(d schemadiff.SchemaDiff) []diffEntry {
	entries := []diffEntry{}
	_ = d.Walk(func(path []string, op schemadiff.Op) error {
		e := diffEntry{Path: path, Op: string(op.Kind())}
		switch o := op.(type) {
		case schemadiff.Add:
			e.New = &o.New
		case schemadiff.Remove:
			e.Old = &o.Old
		case schemadiff.Change:
			e.Old, e.New = &o.Old, &o.New
		}
		entries = append(entries, e)
		return nil
	})
	return entries
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <id> <from> [<to>]",
		Short: "Show the changes between two revisions",
		Long:  "Show the changes between two revisions. <to> defaults to the latest revision.",
		Args:  rangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSchemaID(args[0])
			if err != nil {
				return err
			}
			to := ""
			if len(args) == 3 {
				to = args[2]
			}
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			d, err := ed.Diff(id, args[1], to)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), diffEntries(d))
			}
			if d.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no differences")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), d.String())
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "List the revisions of a schema, oldest first",
		Args:  exactArgs(1),
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

			history, err := ed.History(id)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), history)
			}
			for _, rev := range history {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					rev.RevisionID, rev.CreatedAt.Format(time.RFC3339), rev.Summary)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schema IDs",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, closeEditor, err := a.openEditor()
			if err != nil {
				return err
			}
			defer closeEditor()

			ids, err := ed.List()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				if ids == nil {
					return writeJSON(cmd.OutOrStdout(), []string{})
				}
				return writeJSON(cmd.OutOrStdout(), ids)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
