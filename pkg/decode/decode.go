// Package decode converts loosely typed bridge payloads into typed values.
package decode

import "encoding/json"

// FromMap decodes a generic map payload, such as the data carried by a
// native event, into T by round-tripping it through JSON.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// Raw decodes a raw bridge result into T.
// Empty and null payloads decode to the zero value of T.
func Raw[T any](raw json.RawMessage) (T, error) {
	var result T
	if len(raw) == 0 || string(raw) == "null" {
		return result, nil
	}
	err := json.Unmarshal(raw, &result)
	return result, err
}
