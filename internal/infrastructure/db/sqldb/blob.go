package sqldb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	emptyList   = "[]"
	emptyObject = "{}"
)

// blobText converts a JSON value into the nullable text stored in a blob column.
func blobText(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

// decodeBlob turns stored text back into a JSON value. NULL, empty and
// "null" become fallback; anything that is not valid JSON is an error.
func decodeBlob(table, column, id string, text *string, fallback string) (json.RawMessage, error) {
	if text == nil {
		return json.RawMessage(fallback), nil
	}
	trimmed := bytes.TrimSpace([]byte(*text))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage(fallback), nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decode %s.%s for %s: malformed JSON", table, column, id)
	}
	return json.RawMessage(trimmed), nil
}
