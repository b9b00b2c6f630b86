package cmsdata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawRow is one untyped record as returned by the dataset API.
type RawRow map[string]any

// Keys returns the column spellings a logical field may appear under, in
// lookup order: the published PascalCase_With_Underscores name first, then
// its all-lowercase form.
func Keys(name string) []string {
	lower := strings.ToLower(name)
	if lower == name {
		return []string{name}
	}
	return []string{name, lower}
}

// FirstPresent returns the value under the first key present in row.
func FirstPresent(row RawRow, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String reads a logical field as trimmed text. Missing fields are "".
func (r RawRow) String(name string) string {
	v, ok := FirstPresent(r, Keys(name)...)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Number reads a logical field as a float. It returns nil when the field is
// absent, empty, suppressed or unparseable so that callers can tell missing
// data apart from a reported zero.
func (r RawRow) Number(name string) *float64 {
	v, ok := FirstPresent(r, Keys(name)...)
	if !ok {
		return nil
	}
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		s = strings.TrimPrefix(s, "$")
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// "*" and "#" are the dataset's suppression markers.
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}
