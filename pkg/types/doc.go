// Package types defines the entity schema data model, the RevisionStore and
// LanguageValidator interfaces, configuration, and the standard errors shared
// by the entityschema packages.
//
// A schema is persisted as JSON text inside an immutable Revision. Everything
// else in this package is a view over that text: FullArraySchemaData is the
// flat, diffable shape; FullViewSchemaData groups the same data into one
// NameBadge per language for display; PersistenceSchemaData is the write-back
// record handed to the encoder.
package types
