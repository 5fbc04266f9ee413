package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/entityschema/internal/editor"
	"github.com/mesh-intelligence/entityschema/internal/language"
	"github.com/mesh-intelligence/entityschema/internal/schema"
	"github.com/mesh-intelligence/entityschema/pkg/sqlite"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// openStore attaches the configured revision store. The caller must call
// the returned close function.
func (a *app) openStore() (types.RevisionStore, func(), error) {
	store := sqlite.NewBackend(a.logger)
	if err := store.Attach(a.config); err != nil {
		return nil, nil, fmt.Errorf("attach store: %w", err)
	}
	return store, func() { _ = store.Detach() }, nil
}

// openEditor attaches the store and wires the encoder with the configured
// limits and languages.
func (a *app) openEditor() (*editor.Editor, func(), error) {
	registry, err := language.NewRegistry(a.config.ExtraLanguages...)
	if err != nil {
		return nil, nil, userError(err)
	}
	store, closeStore, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	enc := schema.NewEncoder(registry, a.config.MaxNameBadgeChars, a.config.MaxSchemaTextBytes)
	return editor.New(store, enc, a.logger), closeStore, nil
}

// parseSchemaID validates a positional schema ID.
func parseSchemaID(s string) (types.SchemaID, error) {
	id, err := types.NewSchemaID(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", s, err)
	}
	return id, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readTextInput returns the value of a text flag, or the contents of the
// file flag when set. "-" reads standard input.
func readTextInput(cmd *cobra.Command, text, file string) (string, error) {
	if file == "" {
		return text, nil
	}
	if text != "" {
		return "", userError(fmt.Errorf("--text and --text-file are mutually exclusive"))
	}
	data, err := readFileOrStdin(cmd, file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readFileOrStdin(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, userError(err)
	}
	return data, nil
}

// writeResult is the output of commands that may write a revision.
type writeResult struct {
	Changed  bool            `json:"changed"`
	Revision *types.Revision `json:"revision"`
}

func (a *app) printWriteResult(cmd *cobra.Command, rev *types.Revision, changed bool) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), writeResult{Changed: changed, Revision: rev})
	}
	if !changed {
		fmt.Fprintf(cmd.OutOrStdout(), "no changes; %s is at revision %s\n", rev.SchemaID, rev.RevisionID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s revision %s\n", rev.SchemaID, rev.RevisionID)
	return nil
}

// badgeFlags are the name badge flags shared by create and set-badge.
type badgeFlags struct {
	lang        string
	label       string
	description string
	aliases     []string
}

func (f *badgeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lang, "lang", "en", "language code of the name badge")
	cmd.Flags().StringVar(&f.label, "label", "", "label")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringArrayVar(&f.aliases, "alias", nil, "alias (repeatable)")
}

func (f *badgeFlags) badge() types.NameBadge {
	return types.NameBadge{Label: f.label, Description: f.description, Aliases: f.aliases}
}

func formatBadge(w io.Writer, lang string, b types.NameBadge) {
	fmt.Fprintf(w, "[%s]\n", lang)
	fmt.Fprintf(w, "  label:       %s\n", b.Label)
	fmt.Fprintf(w, "  description: %s\n", b.Description)
	fmt.Fprintf(w, "  aliases:     %s\n", strings.Join(b.Aliases, " | "))
}
