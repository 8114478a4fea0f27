package models

// Helpers for walking the nested map[string]any payloads the flight data
// API returns. Absent or mis-typed fields yield zero values instead of
// panicking, so a malformed response never takes down a poll cycle.

// DigMap walks the given keys through nested maps and returns the map at
// the end of the path, or nil if any step is absent or not a map.
func DigMap(m map[string]any, keys ...string) map[string]any {
	cur := m
	for _, k := range keys {
		if cur == nil {
			return nil
		}
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// DigString returns the string at the end of the key path, or "" when the
// path is absent or the value is not a string.
func DigString(m map[string]any, keys ...string) string {
	if len(keys) == 0 {
		return ""
	}
	parent := DigMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return ""
	}
	s, _ := parent[keys[len(keys)-1]].(string)
	return s
}

// DigInt64 returns the integer at the end of the key path. JSON numbers
// decode as float64, so both representations are accepted.
func DigInt64(m map[string]any, keys ...string) int64 {
	if len(keys) == 0 {
		return 0
	}
	parent := DigMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return 0
	}
	switch v := parent[keys[len(keys)-1]].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// DigFloat returns the float at the end of the key path, or 0.
func DigFloat(m map[string]any, keys ...string) float64 {
	if len(keys) == 0 {
		return 0
	}
	parent := DigMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return 0
	}
	switch v := parent[keys[len(keys)-1]].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
