package models

type Product struct {
	ID          EntityID `json:"id"`
	Name        Text     `json:"name"`
	Description Text     `json:"description"`
	Category    Text     `json:"category"`
	Location    Text     `json:"location"`
	Price       Money    `json:"price"`
	Image       Text     `json:"image,omitempty"`
	Status      Text     `json:"status"`
	Type        Text     `json:"type,omitempty"`
	CreatedAt   Text     `json:"createdAt"`
}

func (p Product) Matches(q string) bool {
	return MatchesQuery(q, string(p.Name), string(p.Category), string(p.Location))
}
