package job

import (
	"strconv"
	"strings"
)

// document is one decoded JSON object from the source store
type document = map[string]any

// accessor reads a single candidate value out of a document
type accessor func(doc document) (string, bool)

// firstPresent walks accessors in order and returns the first non-empty value
func firstPresent(doc document, accessors ...accessor) (string, bool) {
	for _, get := range accessors {
		if get == nil {
			continue
		}
		if v, ok := get(doc); ok {
			return v, true
		}
	}
	return "", false
}

// field reads a scalar at a dotted path. Non-object intermediates yield absent.
func field(path ...string) accessor {
	return func(doc document) (string, bool) {
		v, ok := lookup(doc, path...)
		if !ok {
			return "", false
		}
		return scalarString(v)
	}
}

// constant always yields v when v is non-empty
func constant(v string) accessor {
	return func(document) (string, bool) {
		return v, v != ""
	}
}

func lookup(doc document, path ...string) (any, bool) {
	var cur any = doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// boolAt reports a truthy flag at path; strings "true"/"yes"/"1" count
func boolAt(doc document, path ...string) bool {
	v, ok := lookup(doc, path...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}

// countAt reads a non-negative vacancy count. "1,250" and "120 posts" parse; anything else is absent.
func countAt(doc document, path ...string) *int {
	v, ok := lookup(doc, path...)
	if !ok {
		return nil
	}

	var n int
	switch t := v.(type) {
	case float64:
		if t < 0 || t != float64(int(t)) {
			return nil
		}
		n = int(t)
	case string:
		digits := leadingDigits(strings.ReplaceAll(strings.TrimSpace(t), ",", ""))
		if digits == "" {
			return nil
		}
		parsed, err := strconv.Atoi(digits)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
