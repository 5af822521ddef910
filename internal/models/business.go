package models

import (
	"regexp"
	"strings"
)

type Business struct {
	ID            EntityID `json:"id"`
	Name          Text     `json:"name"`
	Description   Text     `json:"description"`
	Category      Text     `json:"category"`
	Email         Text     `json:"email"`
	Phone         Text     `json:"phone"`
	Location      Text     `json:"location"`
	Logo          Text     `json:"logo,omitempty"`
	Status        Text     `json:"status"`
	SubmittedDate Text     `json:"submittedDate,omitempty"`
	CreatedAt     Text     `json:"createdAt"`
}

func (b Business) Matches(q string) bool {
	return MatchesQuery(q, string(b.Name), string(b.Email), string(b.Category))
}

var emailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BusinessUpdate is the edit form for a business.
type BusinessUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Location    string `json:"location"`
}

// Validate checks every field and returns the update with values trimmed.
// The error, if any, is a FieldErrors.
func (u BusinessUpdate) Validate() (BusinessUpdate, error) {
	out := BusinessUpdate{
		Name:        strings.TrimSpace(u.Name),
		Description: strings.TrimSpace(u.Description),
		Category:    strings.TrimSpace(u.Category),
		Phone:       strings.TrimSpace(u.Phone),
		Email:       strings.TrimSpace(u.Email),
		Location:    strings.TrimSpace(u.Location),
	}

	fe := FieldErrors{}
	if out.Name == "" {
		fe["name"] = "Name is required"
	}
	if out.Description == "" {
		fe["description"] = "Description is required"
	}
	if out.Category == "" {
		fe["category"] = "Category is required"
	}
	if out.Phone == "" {
		fe["phone"] = "Phone is required"
	}
	switch {
	case out.Email == "":
		fe["email"] = "Email is required"
	case !emailRX.MatchString(out.Email):
		fe["email"] = "Invalid email format"
	}
	if out.Location == "" {
		fe["location"] = "Location is required"
	}
	if err := fe.Err(); err != nil {
		return BusinessUpdate{}, err
	}
	return out, nil
}
