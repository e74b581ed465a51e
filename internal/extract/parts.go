package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadPayload is returned when the model's answer is not parseable as the
// expected array shape. Callers treat it like any other external-service
// failure: abort the stage, keep prior state.
var ErrBadPayload = errors.New("extraction payload is not a parts array")

// PartRecord is one extracted row: a fixed core plus whatever extra columns
// the table happened to carry.
type PartRecord struct {
	Name     string            `json:"name"`
	Quantity int               `json:"quantity"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// DecodeParts parses the model output into part records. The payload must
// be a JSON array of objects; anything else is ErrBadPayload. Quantity
// defaults to 1 when absent or not a usable number, and every key besides
// name/quantity lands in Extra as a scalar string.
func DecodeParts(data []byte) ([]PartRecord, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", ErrBadPayload, err, truncate(string(data), 200))
	}

	out := make([]PartRecord, 0, len(rows))
	for _, row := range rows {
		rec := PartRecord{Quantity: 1}
		var extraKeys []string
		for k := range row {
			switch strings.ToLower(k) {
			case "name", "quantity":
			default:
				extraKeys = append(extraKeys, k)
			}
		}
		sort.Strings(extraKeys)

		for k, v := range row {
			switch strings.ToLower(k) {
			case "name":
				rec.Name = scalarString(v)
			case "quantity":
				if q, ok := asQuantity(v); ok {
					rec.Quantity = q
				}
			}
		}
		for _, k := range extraKeys {
			if rec.Extra == nil {
				rec.Extra = make(map[string]string, len(extraKeys))
			}
			rec.Extra[k] = scalarString(row[k])
		}

		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// asQuantity accepts the number representations the model actually emits:
// JSON numbers and numeric strings. Non-positive values are rejected so the
// default of 1 stands.
func asQuantity(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n >= 1 {
			return int(n), true
		}
	case string:
		if q, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && q >= 1 {
			return q, true
		}
	}
	return 0, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
