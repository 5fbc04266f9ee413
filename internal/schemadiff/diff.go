package schemadiff

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Op is a single diff operation: Add, Remove or Change.
type Op interface {
	// Kind returns the operation kind.
	Kind() OpKind
	op()
}

// OpKind names an operation.
type OpKind string

// Operation kinds.
const (
	OpAdd    OpKind = "add"
	OpRemove OpKind = "remove"
	OpChange OpKind = "change"
)

// Add sets a value where there was none.
type Add struct{ New string }

// Remove deletes a value that was Old.
type Remove struct{ Old string }

// Change replaces Old with New.
type Change struct{ Old, New string }

func (Add) Kind() OpKind    { return OpAdd }
func (Remove) Kind() OpKind { return OpRemove }
func (Change) Kind() OpKind { return OpChange }

func (Add) op()    {}
func (Remove) op() {}
func (Change) op() {}

func (o Add) String() string    { return fmt.Sprintf("add %q", o.New) }
func (o Remove) String() string { return fmt.Sprintf("remove %q", o.Old) }
func (o Change) String() string { return fmt.Sprintf("change %q -> %q", o.Old, o.New) }

// MapDiff holds operations keyed by language code.
type MapDiff map[string]Op

// ListDiff holds operations keyed by list position.
type ListDiff map[int]Op

// Top-level field names, used in diff paths.
const (
	FieldLabels       = "labels"
	FieldDescriptions = "descriptions"
	FieldAliases      = "aliases"
	FieldSchemaText   = "schemaText"
)

// SchemaDiff is the difference between two FullArraySchemaData values.
// SchemaText is nil when the text did not change.
type SchemaDiff struct {
	Labels       MapDiff
	Descriptions MapDiff
	Aliases      map[string]ListDiff
	SchemaText   Op
}

// IsEmpty reports whether the diff holds no operation at any level.
func (d SchemaDiff) IsEmpty() bool {
	return d.Len() == 0
}

// Len returns the number of leaf operations.
func (d SchemaDiff) Len() int {
	n := len(d.Labels) + len(d.Descriptions)
	for _, list := range d.Aliases {
		n += len(list)
	}
	if d.SchemaText != nil {
		n++
	}
	return n
}

// Walk calls fn for every leaf operation in a stable order: labels,
// descriptions, aliases, schema text; languages sorted; positions ascending.
// path is the field name followed by the language code and, for aliases,
// the position. Walk stops at the first error fn returns.
func (d SchemaDiff) Walk(fn func(path []string, op Op) error) error {
	for _, field := range []struct {
		name string
		ops  MapDiff
	}{{FieldLabels, d.Labels}, {FieldDescriptions, d.Descriptions}} {
		for _, lang := range slices.Sorted(maps.Keys(field.ops)) {
			if err := fn([]string{field.name, lang}, field.ops[lang]); err != nil {
				return err
			}
		}
	}
	for _, lang := range slices.Sorted(maps.Keys(d.Aliases)) {
		list := d.Aliases[lang]
		for _, i := range slices.Sorted(maps.Keys(list)) {
			if err := fn([]string{FieldAliases, lang, strconv.Itoa(i)}, list[i]); err != nil {
				return err
			}
		}
	}
	if d.SchemaText != nil {
		return fn([]string{FieldSchemaText}, d.SchemaText)
	}
	return nil
}

// String renders one operation per line, e.g. "labels.en: change "A" -> "B"".
func (d SchemaDiff) String() string {
	var sb strings.Builder
	_ = d.Walk(func(path []string, op Op) error {
		fmt.Fprintf(&sb, "%s: %s\n", strings.Join(path, "."), op)
		return nil
	})
	return sb.String()
}
