package expanse

import "encoding/json"

// ValueKind classifies a decoded JSON value.
//
// Documents are expected to be the result of unmarshalling into any: objects
// are map[string]any, arrays are []any, numbers are float64 or [json.Number].
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the JSON kind of a decoded value.
func KindOf(v any) ValueKind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// isScalar reports whether v is null or a bare JSON scalar.
func isScalar(v any) bool {
	switch KindOf(v) {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Source is a snapshot of one JSON payload as loaded.
//
// URL is empty for embedded contexts. Kind is derived from the payload's
// shape at construction.
type Source struct {
	URL   string
	Value any
	Kind  ValueKind
}

// NewSource snapshots a decoded JSON payload.
func NewSource(url string, value any) Source {
	return Source{
		URL:   url,
		Value: value,
		Kind:  KindOf(value),
	}
}
