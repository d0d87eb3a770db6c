package sacloud

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a provider resource identifier. The API is inconsistent about the
// representation: most kinds use numeric-looking strings, a few (disk plans)
// use bare integers. An ID remembers which form it was read in and writes it
// back the same way; it is never normalised.
type ID struct {
	str     string
	num     uint64
	numeric bool
}

// StringID builds an ID with string representation.
func StringID(s string) ID { return ID{str: s} }

// NumericID builds an ID with integer representation.
func NumericID(n uint64) ID { return ID{num: n, numeric: true} }

// IsZero reports whether the ID has not been set.
func (id ID) IsZero() bool { return !id.numeric && id.str == "" }

func (id ID) String() string {
	if id.numeric {
		return strconv.FormatUint(id.num, 10)
	}
	return id.str
}

// MarshalJSON writes the ID back in the representation it was created with.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(strconv.FormatUint(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts either a JSON string or a JSON integer.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{str: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("resource id must be a string or an integer: %w", err)
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("resource id %q is not an unsigned integer: %w", n, err)
	}
	*id = ID{num: u, numeric: true}
	return nil
}

// Typed identifiers. Embedding ID keeps the wire behavior while making it a
// compile error to hand, say, a disk ID to a server operation.

type ServerID struct{ ID }

type DiskID struct{ ID }

type SwitchID struct{ ID }

type ApplianceID struct{ ID }

type ArchiveID struct{ ID }

type SSHKeyID struct{ ID }

type NoteID struct{ ID }

type ServerPlanID struct{ ID }

type DiskPlanID struct{ ID }

type VpcRouterPlanID struct{ ID }
