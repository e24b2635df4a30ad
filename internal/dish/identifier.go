package dish

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentifierKind tags what a path parameter turned out to be.
type IdentifierKind int

const (
	InvalidID IdentifierKind = iota
	NativeID
	SequentialID
)

func (k IdentifierKind) String() string {
	switch k {
	case NativeID:
		return "native"
	case SequentialID:
		return "sequential"
	default:
		return "invalid"
	}
}

// Identifier is the parsed form of a dish lookup key.
type Identifier struct {
	Kind       IdentifierKind
	Native     primitive.ObjectID
	Sequential int64
	Raw        string
}

// ParseIdentifier classifies raw. A 24-character hex string is a native id; anything else
// must parse as a base-10 integer to be a sequential id.
func ParseIdentifier(raw string) Identifier {
	raw = strings.TrimSpace(raw)
	id := Identifier{Raw: raw}
	if primitive.IsValidObjectID(raw) {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err == nil {
			id.Kind = NativeID
			id.Native = oid
			return id
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return id
	}
	id.Kind = SequentialID
	id.Sequential = n
	return id
}
