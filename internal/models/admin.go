package models

import "strings"

const RoleAdmin = "ADMIN"

// AdminUser is the identity returned by the admin login endpoint and cached
// for the length of a session.
type AdminUser struct {
	ID    EntityID `json:"id"`
	Name  Text     `json:"name"`
	Email Text     `json:"email"`
	Role  Text     `json:"role"`
}

func (u AdminUser) IsAdmin() bool {
	return strings.TrimSpace(string(u.Role)) == RoleAdmin
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}
