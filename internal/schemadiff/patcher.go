package schemadiff

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// ConflictError reports a diff operation whose precondition does not hold
// against the patched data. Current is empty when the target was absent.
type ConflictError struct {
	Path    []string
	Op      Op
	Current string
	Present bool
}

func (e *ConflictError) Error() string {
	current := "absent"
	if e.Present {
		current = strconv.Quote(e.Current)
	}
	return fmt.Sprintf("%s at %s: cannot %s, current value is %s",
		types.ErrPatchConflict, strings.Join(e.Path, "."), e.Op, current)
}

// Unwrap returns types.ErrPatchConflict.
func (e *ConflictError) Unwrap() error { return types.ErrPatchConflict }

// PatchSchema applies diff to base and returns the result. On the first
// conflicting operation it returns a *ConflictError and zero data; base is
// never modified.
func PatchSchema(base types.FullArraySchemaData, diff SchemaDiff) (types.FullArraySchemaData, error) {
	out := base.Clone()

	if err := patchMap(out.Labels, diff.Labels, FieldLabels); err != nil {
		return types.FullArraySchemaData{}, err
	}
	if err := patchMap(out.Descriptions, diff.Descriptions, FieldDescriptions); err != nil {
		return types.FullArraySchemaData{}, err
	}
	for _, lang := range slices.Sorted(maps.Keys(diff.Aliases)) {
		group, err := patchList(out.Aliases[lang], diff.Aliases[lang], lang)
		if err != nil {
			return types.FullArraySchemaData{}, err
		}
		if len(group) == 0 {
			delete(out.Aliases, lang)
		} else {
			out.Aliases[lang] = group
		}
	}
	if diff.SchemaText != nil {
		text, err := applyScalar(out.SchemaText, diff.SchemaText)
		if err != nil {
			return types.FullArraySchemaData{}, err
		}
		out.SchemaText = text
	}
	return out, nil
}

func patchMap(target map[string]string, ops MapDiff, field string) error {
	for _, key := range slices.Sorted(maps.Keys(ops)) {
		current, present := target[key]
		value, keep, err := apply(current, present, ops[key])
		if err != nil {
			return withPath(err, field, key)
		}
		if keep {
			target[key] = value
		} else {
			delete(target, key)
		}
	}
	return nil
}

// patchList applies positional operations through an index map, then
// compacts the surviving elements in index order.
func patchList(group []string, ops ListDiff, lang string) ([]string, error) {
	byIndex := make(map[int]string, len(group))
	for i, v := range group {
		byIndex[i] = v
	}
	for _, i := range slices.Sorted(maps.Keys(ops)) {
		current, present := byIndex[i]
		value, keep, err := apply(current, present, ops[i])
		if err != nil {
			return nil, withPath(err, FieldAliases, lang, strconv.Itoa(i))
		}
		if keep {
			byIndex[i] = value
		} else {
			delete(byIndex, i)
		}
	}
	out := make([]string, 0, len(byIndex))
	for _, i := range slices.Sorted(maps.Keys(byIndex)) {
		out = append(out, byIndex[i])
	}
	return out, nil
}

// applyScalar treats the empty text as absent, matching diffScalar.
func applyScalar(current string, op Op) (string, error) {
	value, keep, err := apply(current, current != "", op)
	if err != nil {
		return "", withPath(err, FieldSchemaText)
	}
	if !keep {
		return "", nil
	}
	return value, nil
}

// apply checks op against the current value and returns the value to store
// and whether the key survives.
func apply(current string, present bool, op Op) (string, bool, error) {
	conflict := &ConflictError{Op: op, Current: current, Present: present}
	switch o := op.(type) {
	case Add:
		if present && current != o.New {
			return "", false, conflict
		}
		return o.New, true, nil
	case Remove:
		if !present || current != o.Old {
			return "", false, conflict
		}
		return "", false, nil
	case Change:
		if !present || current != o.Old {
			return "", false, conflict
		}
		return o.New, true, nil
	default:
		return "", false, fmt.Errorf("unsupported diff operation %T", op)
	}
}

func withPath(err error, path ...string) error {
	if ce, ok := err.(*ConflictError); ok {
		ce.Path = path
	}
	return err
}
