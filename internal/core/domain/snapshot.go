package domain

// Snapshot is the full reference data set the client application loads at start.
type Snapshot struct {
	Clients         []Client   `json:"clients"`
	Projects        []Project  `json:"projects"`
	Users           []User     `json:"users"`
	TestCases       []TestCase `json:"testCases"`
	Reports         []Report   `json:"reports"`
	CustomTemplates []Template `json:"customTestTemplates"`
	PresetTemplates []Template `json:"presetTests"`
}
