package rules

import (
	"github.com/google/uuid"
)

// UUID accepts the canonical 36-character hyphenated form only.
func UUID() Check[string] {
	return Check[string]{
		Name:    "uuid",
		Code:    "validation.uuid",
		Message: "must be a valid UUID",
		Test: func(v string) bool {
			_, ok := parseCanonicalUUID(v)
			return ok
		},
	}
}

// NonNilUUID fails for uuid.Nil.
func NonNilUUID() Check[uuid.UUID] {
	return Check[uuid.UUID]{
		Name:    "uuid_not_nil",
		Code:    "validation.uuid_not_nil",
		Message: "UUID cannot be nil",
		Test: func(v uuid.UUID) bool {
			return v != uuid.Nil
		},
	}
}

// uuid.Parse also accepts urn and braced forms; reject them up front.
func parseCanonicalUUID(v string) (uuid.UUID, bool) {
	if len(v) != 36 || v[8] != '-' || v[13] != '-' || v[18] != '-' || v[23] != '-' {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v)
	return id, err == nil
}
