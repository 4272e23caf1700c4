// Package records builds submission records and maintains the JSON record
// list they are appended to.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseList decodes a record list. Existing entries are kept as raw JSON so
// fields this program does not know about survive an append. Empty,
// malformed or non-array content yields an empty list; it never fails.
func ParseList(data []byte) []json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return []json.RawMessage{}
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil || list == nil {
		return []json.RawMessage{}
	}
	return list
}

// IsList reports whether data is a well-formed JSON array.
func IsList(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '[' && json.Valid(data)
}

// AppendRecord encodes rec and appends it to the end of list.
func AppendRecord(list []json.RawMessage, rec any) ([]json.RawMessage, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return append(list, raw), nil
}

// MarshalList encodes the list as a two-space indented JSON array.
func MarshalList(list []json.RawMessage) ([]byte, error) {
	if list == nil {
		list = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding record list: %w", err)
	}
	return data, nil
}
