package validator

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var ErrNotJSON = errors.New("value is not valid JSON")

// StructuredJSON normalizes a free-form JSON field. Objects and arrays are
// kept as they are; a string must itself contain JSON text, which is returned
// decoded. Any other value is rejected.
func StructuredJSON(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil, ErrNotJSON
	}

	v := gjson.ParseBytes(raw)
	switch {
	case v.IsObject(), v.IsArray():
		return raw, nil
	case v.Type == gjson.String:
		inner := v.String()
		if !gjson.Valid(inner) {
			return nil, ErrNotJSON
		}
		return json.RawMessage(inner), nil
	default:
		return nil, ErrNotJSON
	}
}
