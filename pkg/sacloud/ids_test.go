package sacloud

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalPreservesRepresentation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		numeric bool
	}{
		{name: "string id", input: `"112900000000"`, want: "112900000000", numeric: false},
		{name: "integer id", input: `4`, want: "4", numeric: true},
		{name: "large integer id", input: `100001001`, want: "100001001", numeric: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if id.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id.String())
			}

			out, err := json.Marshal(id)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.input {
				t.Errorf("round trip changed representation: %s -> %s", tt.input, out)
			}
		})
	}
}

func TestIDUnmarshalRejectsNonScalar(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"ID":1}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestIDZero(t *testing.T) {
	var id ID
	if !id.IsZero() {
		t.Error("zero value should be zero")
	}
	if StringID("1").IsZero() {
		t.Error("string id should not be zero")
	}
	if NumericID(0).IsZero() {
		t.Error("numeric id should not be zero even at 0")
	}
}

func TestTypedIDEquality(t *testing.T) {
	a := ServerID{StringID("123")}
	b := ServerID{StringID("123")}
	if a != b {
		t.Error("same ids should compare equal")
	}
	if a == (ServerID{StringID("456")}) {
		t.Error("different ids should not compare equal")
	}
}
