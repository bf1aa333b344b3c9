package markdown

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const headerDelimiter = "---\n"

// SplitHeader separates a document into its header block and body. Line
// endings are normalised to "\n" first. The text is split on the first two
// delimiter occurrences, so the body may itself contain "---" lines.
func SplitHeader(source []byte) (string, string, error) {
	text := strings.ReplaceAll(string(source), "\r\n", "\n")
	if !strings.HasPrefix(text, headerDelimiter) {
		return "", "", &HeaderError{Kind: ErrMissingHeader}
	}

	parts := strings.SplitN(text, headerDelimiter, 3)
	if len(parts) < 3 || parts[0] != "" {
		return "", "", &HeaderError{Kind: ErrMalformedHeader}
	}
	return parts[1], parts[2], nil
}

// Tree is a decoded header: a generic key-value document with scalar, list,
// and nested map values. Lookups never coerce between types.
type Tree map[string]any

// DecodeHeader decodes a header block. An empty block yields an empty tree.
func DecodeHeader(block string) (Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, &HeaderError{Kind: ErrHeaderDecode, Cause: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Tree(raw), nil
}

// GetString returns the value at key when it is a string.
func (t Tree) GetString(key string) (string, bool) {
	value, ok := t[key].(string)
	return value, ok
}

// GetInt returns the value at key when it is an integer that fits in an int.
func (t Tree) GetInt(key string) (int, bool) {
	switch value := t[key].(type) {
	case int:
		return value, true
	case int64:
		if int64(int(value)) != value {
			return 0, false
		}
		return int(value), true
	case uint64:
		if value > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(value), true
	default:
		return 0, false
	}
}

// GetBool returns the value at key when it is a boolean.
func (t Tree) GetBool(key string) (bool, bool) {
	value, ok := t[key].(bool)
	return value, ok
}

// GetStrings returns the string items of the list at key. Non-string items
// are dropped. ok is false when the key is absent or not a list.
func (t Tree) GetStrings(key string) ([]string, bool) {
	items, ok := t[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := item.(string); ok {
			out = append(out, value)
		}
	}
	return out, true
}

// GetMap returns the nested map at key.
func (t Tree) GetMap(key string) (Tree, bool) {
	value, ok := t[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Tree(value), true
}

// dateLayout is the only accepted header date format.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
}

// dateValue reads a date field. The bool reports presence; a present value
// that is not a valid date returns an InvalidDate error.
func (t Tree) dateValue(key string) (time.Time, bool, error) {
	raw, ok := t[key]
	if !ok || raw == nil {
		return time.Time{}, false, nil
	}
	switch value := raw.(type) {
	case time.Time:
		utc := value.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC), true, nil
	case string:
		parsed, err := ParseDate(value)
		if err != nil {
			return time.Time{}, true, &HeaderError{Kind: ErrInvalidDate, Field: key, Value: value, Cause: err}
		}
		return parsed, true, nil
	default:
		return time.Time{}, false, nil
	}
}
