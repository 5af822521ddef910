package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID                EntityID `json:"id"`
	Name              Text     `json:"name"`
	Description       Text     `json:"description"`
	Price             Money    `json:"price"`
	PriceMonthly      Money    `json:"priceMonthly"`
	PriceYearly       Money    `json:"priceYearly"`
	AllowedBusinesses Count    `json:"allowedBusinesses"`
	AllowedProducts   Count    `json:"allowedProducts"`
	ProfileStatus     Text     `json:"profile_status"`
	Users             Count    `json:"users"`
	CreatedAt         Text     `json:"createdAt"`
}

func (p Plan) Matches(q string) bool {
	return MatchesQuery(q, string(p.Name), string(p.Description))
}

// PlanUpdate is the edit form for a plan. Every field arrives as text, the
// way the form collects it.
type PlanUpdate struct {
	Name              Text `json:"name"`
	Description       Text `json:"description"`
	Price             Text `json:"price"`
	AllowedBusinesses Text `json:"allowedBusinesses"`
	AllowedProducts   Text `json:"allowedProducts"`
	ProfileStatus     Text `json:"profile_status"`
}

// PlanPayload is the body sent to the plan update endpoint.
type PlanPayload struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"-"`
	AllowedBusinesses int             `json:"allowedBusinesses"`
	AllowedProducts   int             `json:"allowedProducts"`
	ProfileStatus     string          `json:"profile_status"`
}

// MarshalJSON writes the price as a JSON number.
func (p PlanPayload) MarshalJSON() ([]byte, error) {
	type alias PlanPayload
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{alias(p), json.Number(p.Price.String())})
}

// Validate converts the form into a payload. The error, if any, is a
// FieldErrors keyed by the form field names.
func (u PlanUpdate) Validate() (PlanPayload, error) {
	out := PlanPayload{
		Name:          strings.TrimSpace(string(u.Name)),
		Description:   strings.TrimSpace(string(u.Description)),
		ProfileStatus: strings.TrimSpace(string(u.ProfileStatus)),
	}

	fe := FieldErrors{}
	if out.Name == "" {
		fe["name"] = "Plan name is required"
	}
	if out.Description == "" {
		fe["description"] = "Description is required"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(string(u.Price)))
	if err != nil || price.IsNegative() {
		fe["price"] = "Price must be a valid number (0 or greater)"
	}
	out.Price = price
	if n, ok := nonNegativeInt(u.AllowedBusinesses); ok {
		out.AllowedBusinesses = n
	} else {
		fe["allowedBusinesses"] = "Must be a valid number (0 or greater)"
	}
	if n, ok := nonNegativeInt(u.AllowedProducts); ok {
		out.AllowedProducts = n
	} else {
		fe["allowedProducts"] = "Must be a valid number (0 or greater)"
	}
	if out.ProfileStatus == "" {
		fe["profile_status"] = "Profile status is required"
	}
	if err := fe.Err(); err != nil {
		return PlanPayload{}, err
	}
	return out, nil
}

func nonNegativeInt(t Text) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(t)))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
