package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// compactBlob normalises a client supplied JSON value before it is stored.
// Absent values and JSON null come back as nil.
func compactBlob(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return buf.Bytes(), nil
}
