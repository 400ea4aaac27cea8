package domain

const (
	RoleAdmin  = "admin"
	RoleTester = "tester"
)

// User models an account that can sign in to the tracker.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Identity is the subset of a user carried inside a session token.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Identity returns the token payload for u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role}
}
