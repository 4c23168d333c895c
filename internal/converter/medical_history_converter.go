package converter

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// historyPair is the canonical wire shape for one medical-history entry.
// Two upstream writers disagreed on the payload shape (array of pairs vs.
// flat object); reads accept both, writes always use the array-of-pairs
// form.
type historyPair struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// ParseMedicalHistory decodes the gateway's medical_history payload into a
// single display string. The payload may arrive as an array of {Key,Value}
// pairs, a flat object, a plain string, or a JSON string containing any of
// those (double encoding). Parse failures fall back to the raw text; nothing
// in here returns an error.
func ParseMedicalHistory(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		// Not JSON at all; the bytes are the note text.
		return strings.TrimSpace(string(raw))
	}

	return historyFromValue(value)
}

// EncodeMedicalHistory wraps free text into the canonical array-of-pairs
// wire shape. Empty text encodes as an absent field.
func EncodeMedicalHistory(text string) json.RawMessage {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw, err := json.Marshal([]historyPair{{Key: "notes", Value: text}})
	if err != nil {
		return nil
	}
	return raw
}

// historyFromValue is the decode dispatch over the observed payload shapes.
// Recursion handles doubly-encoded JSON strings.
func historyFromValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			var nested interface{}
			if err := json.Unmarshal([]byte(trimmed), &nested); err == nil {
				return historyFromValue(nested)
			}
		}
		return v
	case []interface{}:
		return historyFromPairs(v)
	case map[string]interface{}:
		return historyFromObject(v)
	default:
		return stringifyHistoryValue(value)
	}
}

// historyFromPairs scans an array-of-pairs payload. A pair whose Key is
// "notes" wins; otherwise the first entry exposing any Value, then any
// notes property, then empty.
func historyFromPairs(entries []interface{}) string {
	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		key, _ := lookupFold(obj, "key")
		if keyStr, ok := key.(string); ok && canonicalKey(keyStr) == "notes" {
			if value, found := lookupFold(obj, "value"); found {
				return stringifyHistoryValue(value)
			}
		}
	}

	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if value, found := lookupFold(obj, "value"); found {
			return stringifyHistoryValue(value)
		}
	}

	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if value, found := lookupFold(obj, "notes"); found {
			return stringifyHistoryValue(value)
		}
	}

	return ""
}

// historyFromObject handles the flat-object variant: a notes property, a
// single {Key,Value} pair, or as a last resort the first string-typed
// property in key order.
func historyFromObject(obj map[string]interface{}) string {
	if value, found := lookupFold(obj, "notes"); found {
		return stringifyHistoryValue(value)
	}

	if key, found := lookupFold(obj, "key"); found {
		if keyStr, ok := key.(string); ok && canonicalKey(keyStr) == "notes" {
			if value, ok := lookupFold(obj, "value"); ok {
				return stringifyHistoryValue(value)
			}
		}
	}

	if value, found := lookupFold(obj, "value"); found {
		return stringifyHistoryValue(value)
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if str, ok := obj[key].(string); ok {
			return str
		}
	}

	return ""
}

// lookupFold finds a property by case-insensitive name.
func lookupFold(obj map[string]interface{}, name string) (interface{}, bool) {
	for key, value := range obj {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func stringifyHistoryValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
