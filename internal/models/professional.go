package models

type Professional struct {
	ID          EntityID `json:"id"`
	Name        Text     `json:"name"`
	Email       Text     `json:"email"`
	Phone       Text     `json:"phone"`
	Profession  Text     `json:"profession"`
	Specialty   Text     `json:"specialty"`
	Experience  Text     `json:"experience"`
	Location    Text     `json:"location,omitempty"`
	Description Text     `json:"description,omitempty"`
	Image       Text     `json:"image,omitempty"`
	Status      Text     `json:"status"`
	CreatedAt   Text     `json:"createdAt"`
}

func (p Professional) Matches(q string) bool {
	return MatchesQuery(q, string(p.Name), string(p.Email), string(p.Profession), string(p.Specialty))
}
