package event

import "encoding/json"

// DecodePayload returns the payload as T. Payloads published in-process arrive
// as T or *T; payloads read back from JSON (audit log, dead letters) arrive as
// maps and are converted through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	raw, err := json.Marshal(input)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
