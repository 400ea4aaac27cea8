package domain

// Client is an organisation that owns projects.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project groups test cases for one client.
type Project struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}
