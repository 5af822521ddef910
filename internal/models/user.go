package models

// User is a marketplace account as listed in the users table.
type User struct {
	ID         EntityID `json:"id"`
	Name       Text     `json:"name"`
	Email      Text     `json:"email"`
	Phone      Text     `json:"phone,omitempty"`
	Role       Text     `json:"role"`
	Plan       Text     `json:"plan"`
	Businesses Count    `json:"businesses"`
	Products   Count    `json:"products"`
	CreatedAt  Text     `json:"createdAt"`
}

func (u User) Matches(q string) bool {
	return MatchesQuery(q, string(u.Name), string(u.Email), string(u.Role))
}
