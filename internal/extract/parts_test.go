package extract

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDecodeParts_CoreFields(t *testing.T) {
	data := []byte(`[
		{"name": "Seal Kit", "quantity": 2},
		{"name": "Bearing", "quantity": "4"},
		{"name": "Grease Cartridge"}
	]`)

	parts, err := DecodeParts(data)
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0].Name != "Seal Kit" || parts[0].Quantity != 2 {
		t.Errorf("unexpected first part: %+v", parts[0])
	}
	if parts[1].Quantity != 4 {
		t.Errorf("expected numeric string quantity parsed, got %d", parts[1].Quantity)
	}
	if parts[2].Quantity != 1 {
		t.Errorf("expected missing quantity to default to 1, got %d", parts[2].Quantity)
	}
}

func TestDecodeParts_QuantityDefaults(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"missing", `[{"name":"A"}]`, 1},
		{"null", `[{"name":"A","quantity":null}]`, 1},
		{"non-numeric string", `[{"name":"A","quantity":"a few"}]`, 1},
		{"zero", `[{"name":"A","quantity":0}]`, 1},
		{"negative", `[{"name":"A","quantity":-3}]`, 1},
		{"float", `[{"name":"A","quantity":3.0}]`, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parts, err := DecodeParts([]byte(c.raw))
			if err != nil {
				t.Fatalf("DecodeParts: %v", err)
			}
			if parts[0].Quantity != c.want {
				t.Errorf("quantity = %d, want %d", parts[0].Quantity, c.want)
			}
		})
	}
}

func TestDecodeParts_OpenAttributes(t *testing.T) {
	data := []byte(`[{"name":"V-Belt","quantity":1,"modelNumber":"VB-220","manufacturer":"Mazak","remarks":"replace yearly","length":1.5}]`)

	parts, err := DecodeParts(data)
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}
	extra := parts[0].Extra
	if extra["modelNumber"] != "VB-220" || extra["manufacturer"] != "Mazak" || extra["remarks"] != "replace yearly" {
		t.Errorf("unexpected extra attributes: %v", extra)
	}
	if extra["length"] != "1.5" {
		t.Errorf("expected numeric extras stringified, got %q", extra["length"])
	}
	if _, ok := extra["name"]; ok {
		t.Error("core fields must not leak into extra attributes")
	}
}

func TestDecodeParts_SkipsNamelessRows(t *testing.T) {
	parts, err := DecodeParts([]byte(`[{"quantity":5},{"name":"  "},{"name":"Oil Filter"}]`))
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}
	if len(parts) != 1 || parts[0].Name != "Oil Filter" {
		t.Errorf("expected only the named row, got %+v", parts)
	}
}

func TestDecodeParts_EmptyArray(t *testing.T) {
	parts, err := DecodeParts([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeParts: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("expected no parts, got %d", len(parts))
	}
}

func TestDecodeParts_BadPayload(t *testing.T) {
	for _, raw := range []string{`{"name":"not an array"}`, `I could not find a table.`, `42`} {
		if _, err := DecodeParts([]byte(raw)); !errors.Is(err, ErrBadPayload) {
			t.Errorf("DecodeParts(%q) error = %v, want ErrBadPayload", raw, err)
		}
	}
}

func TestExtractParts_MissingCredential(t *testing.T) {
	c := NewClaudeClient("", "claude-sonnet-4-5")
	_, err := c.ExtractParts(context.Background(), []byte{0xFF, 0xD8, 0xFF})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestStripCodeBlock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n[1]\n```", "[1]"},
		{"```\n[1]\n```", "[1]"},
		{"[1]", "[1]"},
		{"  [1]  ", "[1]"},
	}
	for _, c := range cases {
		if got := stripCodeBlock(c.in); got != c.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCallStats_Rolling(t *testing.T) {
	s := NewCallStats(time.Hour)
	for _, ms := range []int64{10, 20, 30, 40} {
		s.Record(ms)
	}
	snap := s.Snapshot()
	if snap.Count != 4 || snap.MinMs != 10 || snap.MaxMs != 40 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.AvgMs != 25 {
		t.Errorf("expected avg 25, got %v", snap.AvgMs)
	}
	// Nearest-rank percentiles over {10,20,30,40}.
	if snap.P50Ms != 20 || snap.P95Ms != 40 || snap.P99Ms != 40 {
		t.Errorf("unexpected percentiles %+v", snap)
	}
}
