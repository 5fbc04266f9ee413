// Package schema converts entity schemas between their persisted JSON form
// and the in-memory views in pkg/types.
//
// The Cleaner canonicalizes user input, the Encoder validates and serializes
// it as serialization version 3.0, and the converter functions (FullArray,
// FullView, MonolingualNameBadge, Persistence, SchemaText, SchemaID) parse any
// supported serialization version back into views. All functions are pure.
package schema
