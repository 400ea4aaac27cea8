package service

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	testCaseIDPrefix = "TEST"
	reportIDPrefix   = "REP"
	templateIDPrefix = "CUSTOM"
)

// newID returns prefix-<uuidv7>. v7 ids sort roughly by creation time within
// a process but carry no cross-process ordering guarantee.
func newID(prefix string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "-" + id.String(), nil
}
