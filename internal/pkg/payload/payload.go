// Package payload reads the loosely-typed JSON the HRIS backend returns.
//
// The same quantity can arrive under several field names (runId / id,
// runYear / year) and numbers can arrive as JSON numbers, quoted strings or
// null. Every endpoint adapter goes through Pick so that the "first present
// field wins" rule lives in exactly one place.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Object is a JSON object whose values are decoded lazily.
type Object map[string]json.RawMessage

var null = []byte("null")

// DecodeObject decodes raw as an Object. It reports false when raw is not a JSON object.
func DecodeObject(raw json.RawMessage) (Object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj Object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// DecodeArray decodes raw as a JSON array. It reports false when raw is not an array.
func DecodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Rows decodes a list payload. A missing or null payload is an empty list;
// anything other than an array is an error.
func Rows(raw json.RawMessage) ([]json.RawMessage, error) {
	if IsNull(raw) {
		return []json.RawMessage{}, nil
	}
	items, ok := DecodeArray(raw)
	if !ok {
		return nil, fmt.Errorf("expected a JSON array, got %.32q", string(raw))
	}
	return items, nil
}

// IsNull reports whether raw is empty or the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, null)
}

// Pick returns the value of the first key that is present and not null.
func Pick(obj Object, keys ...string) (json.RawMessage, bool) {
	for _, key := range keys {
		raw, ok := obj[key]
		if ok && !IsNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

// String picks the first present key and renders it as a string.
// Numbers are kept in their JSON spelling.
func String(obj Object, keys ...string) string {
	raw, ok := Pick(obj, keys...)
	if !ok {
		return ""
	}
	return StringValue(raw)
}

// StringValue renders a single JSON value as a string.
func StringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := strings.TrimSpace(string(raw))
	if IsNull(raw) || strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ""
	}
	return trimmed
}

// Decimal picks the first present key as a decimal. Malformed values are zero.
func Decimal(obj Object, keys ...string) decimal.Decimal {
	raw, ok := Pick(obj, keys...)
	if !ok {
		return decimal.Zero
	}
	return DecimalValue(raw)
}

// DecimalValue parses a number or numeric string. Anything else is zero.
func DecimalValue(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(StringValue(raw))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Int picks the first present key as an integer. Malformed values are zero.
func Int(obj Object, keys ...string) int {
	raw, ok := Pick(obj, keys...)
	if !ok {
		return 0
	}
	return IntValue(raw)
}

// IntValue parses an integer, truncating fractional numbers.
func IntValue(raw json.RawMessage) int {
	s := strings.TrimSpace(StringValue(raw))
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(DecimalValue(raw).IntPart())
}

// Time picks the first present key as a timestamp.
func Time(obj Object, keys ...string) *time.Time {
	raw, ok := Pick(obj, keys...)
	if !ok {
		return nil
	}
	return TimeValue(raw)
}

// Layouts accepted for timestamps: RFC 3339 with or without fraction, and the
// zone-less ISO local date-time a Java backend writes by default.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeValue parses a timestamp string, or a [y, m, d, h, mi, s, nanos] array.
// Unparseable values are nil.
func TimeValue(raw json.RawMessage) *time.Time {
	if parts, ok := DecodeArray(raw); ok {
		return timeFromParts(parts)
	}
	s := strings.TrimSpace(StringValue(raw))
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func timeFromParts(parts []json.RawMessage) *time.Time {
	if len(parts) < 3 {
		return nil
	}
	n := make([]int, 7)
	for i := 0; i < len(parts) && i < len(n); i++ {
		n[i] = IntValue(parts[i])
	}
	if n[1] < 1 || n[1] > 12 {
		return nil
	}
	t := time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], n[6], time.UTC)
	return &t
}
