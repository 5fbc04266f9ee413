package schemadiff

import "github.com/mesh-intelligence/entityschema/pkg/types"

// DiffSchemas returns the operations that turn base into updated.
func DiffSchemas(base, updated types.FullArraySchemaData) SchemaDiff {
	return SchemaDiff{
		Labels:       diffMaps(base.Labels, updated.Labels),
		Descriptions: diffMaps(base.Descriptions, updated.Descriptions),
		Aliases:      diffAliasGroups(base.Aliases, updated.Aliases),
		SchemaText:   diffScalar(base.SchemaText, updated.SchemaText),
	}
}

func diffMaps(base, updated map[string]string) MapDiff {
	ops := MapDiff{}
	for key, old := range base {
		newValue, ok := updated[key]
		switch {
		case !ok:
			ops[key] = Remove{Old: old}
		case newValue != old:
			ops[key] = Change{Old: old, New: newValue}
		}
	}
	for key, newValue := range updated {
		if _, ok := base[key]; !ok {
			ops[key] = Add{New: newValue}
		}
	}
	return ops
}

// diffAliasGroups diffs groups present on one side only against an empty
// list, so every language maps to a positional ListDiff.
func diffAliasGroups(base, updated map[string][]string) map[string]ListDiff {
	groups := map[string]ListDiff{}
	for lang, old := range base {
		if ops := diffLists(old, updated[lang]); len(ops) > 0 {
			groups[lang] = ops
		}
	}
	for lang, newGroup := range updated {
		if _, ok := base[lang]; ok {
			continue
		}
		if ops := diffLists(nil, newGroup); len(ops) > 0 {
			groups[lang] = ops
		}
	}
	return groups
}

// diffLists compares two lists element by element.
func diffLists(base, updated []string) ListDiff {
	ops := ListDiff{}
	for i := 0; i < max(len(base), len(updated)); i++ {
		switch {
		case i >= len(updated):
			ops[i] = Remove{Old: base[i]}
		case i >= len(base):
			ops[i] = Add{New: updated[i]}
		case base[i] != updated[i]:
			ops[i] = Change{Old: base[i], New: updated[i]}
		}
	}
	return ops
}

func diffScalar(base, updated string) Op {
	switch {
	case base == updated:
		return nil
	case base == "":
		return Add{New: updated}
	case updated == "":
		return Remove{Old: base}
	default:
		return Change{Old: base, New: updated}
	}
}
