package model

// Settings is the singleton company profile.
type Settings struct {
	CompanyName string  `json:"companyName"`
	Logo        *string `json:"logo"`
}

// DefaultCompanyName is used when no settings have been saved yet.
const DefaultCompanyName = "Inventory System"

// User is a login account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
}

// UserView is the public projection of a User.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// View strips the password hash.
func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Role: u.Role}
}
