package gamepanel

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

// Decode parses a response body as a JSON object. It returns nil when the body
// is empty, is not valid JSON or holds something other than an object.
func Decode(raw []byte) map[string]any {
	obj, _ := DecodeValue(raw).(map[string]any)
	return obj
}

// DecodeValue parses a response body into the generic JSON representation
// (map[string]any, []any, string, int, float64, bool or nil). Integral numbers
// that fit an int decode as int so large ids stay exact. Malformed input yields nil.
func DecodeValue(raw []byte) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil
	}
	return convertNumbers(v)
}

func convertNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, item := range val {
			val[key] = convertNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = convertNumbers(item)
		}
		return val
	case json.Number:
		if i, err := strconv.ParseInt(val.String(), 10, 0); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return v
	}
}
