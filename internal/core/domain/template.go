package domain

import "encoding/json"

// Template describes the form a tester fills in while running a test case.
// Presets are seeded outside this service; custom templates are created here.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	FormFields  json.RawMessage `json:"form_fields"`
	IsCustom    bool            `json:"is_custom"`
}
