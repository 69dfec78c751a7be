package entity

import "strings"

// User is the authenticated session identity
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// IsAdmin returns true if the user may see every employee's bills
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Type, UserTypeAdmin)
}
