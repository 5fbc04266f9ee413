package schema

import (
	"fmt"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// SerializationVersion selects the parsing rules for persisted schema JSON.
type SerializationVersion int

// Supported serialization versions. The zero value is not a version.
const (
	Version1 SerializationVersion = iota + 1 // term objects, text in "schema"
	Version2                                 // flat maps, text in "schema"
	Version3                                 // flat maps, text in "schemaText"
)

// CurrentVersion is the version the encoder writes.
const CurrentVersion = Version3

// ParseSerializationVersion maps a serializationVersion tag to a version.
// Any other tag, including an empty one, wraps ErrUnknownSerializationVersion.
func ParseSerializationVersion(tag string) (SerializationVersion, error) {
	switch tag {
	case "1.0":
		return Version1, nil
	case "2.0":
		return Version2, nil
	case "3.0":
		return Version3, nil
	}
	return 0, fmt.Errorf("%w: %q", types.ErrUnknownSerializationVersion, tag)
}

// String returns the serializationVersion tag.
func (v SerializationVersion) String() string {
	switch v {
	case Version1:
		return "1.0"
	case Version2:
		return "2.0"
	case Version3:
		return "3.0"
	}
	return fmt.Sprintf("SerializationVersion(%d)", int(v))
}
