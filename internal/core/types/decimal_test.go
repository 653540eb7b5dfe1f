package types

import (
	"encoding/json"
	"testing"
)

func TestQuantityString(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		want string
	}{
		{"zero", 0, "0.0000"},
		{"whole", 10 * Quantity(QuantityScale), "10.0000"},
		{"fraction", 31500, "3.1500"},
		{"negative", -70000, "-7.0000"},
		{"negative fraction", -1, "-0.0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Quantity
	}{
		{"number", `10.5`, 105000},
		{"string", `"3.15"`, 31500},
		{"negative", `-7`, -70000},
		{"null", `null`, 0},
		{"extra digits truncated", `1.23456`, 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			if err := json.Unmarshal([]byte(tt.input), &q); err != nil {
				t.Fatalf("unmarshal %q: %v", tt.input, err)
			}
			if q != tt.want {
				t.Errorf("got %d, want %d", q, tt.want)
			}
		})
	}
}

func TestQuantityRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.345)
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "12.3450" {
		t.Errorf("marshal = %s, want 12.3450", data)
	}

	var back Quantity
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != q {
		t.Errorf("round trip mismatch: %d != %d", back, q)
	}
}
