package types

import (
	"bytes"
	"encoding/json"
)

// NullableUint tracks whether an id field was explicitly present in JSON,
// which lets partial updates tell an omitted field apart from null.
type NullableUint struct {
	Valid bool
	Value *uint
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUint) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	var parsed uint
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Valid = true
	n.Value = &parsed
	return nil
}

// IsNull reports whether the field was sent as an explicit null.
func (n NullableUint) IsNull() bool {
	return n.Valid && n.Value == nil
}
