package models

import (
	"encoding/json"
	"fmt"
)

// DecodeSubmission builds a submission from one record of the source
// collection for t. Unknown fields are kept for re-encoding; fields with an
// unexpected shape decode to their zero value.
func DecodeSubmission(t SubmissionType, data []byte) (Submission, error) {
	if !t.Valid() {
		return Submission{}, fmt.Errorf("%w: %q", ErrUnknownSubmissionType, string(t))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Submission{}, ErrNotObject
	}

	id, err := scalarText(fields["id"])
	if err != nil || id == "" {
		return Submission{}, ErrMissingID
	}

	sub := Submission{
		Key:           SubmissionKey{Type: t, ID: EntityID(id)},
		Label:         t.Label(),
		Status:        field(fields, "status"),
		Name:          field(fields, "name"),
		SubmittedDate: field(fields, "submittedDate"),
		CreatedAt:     field(fields, "createdAt"),
		User:          decodeUser(fields["user"]),
		raw:           fields,
	}

	if t == SubmissionPlanRequest {
		pr := &PlanRequestDetails{
			CurrentPlan:   decodePlanRef(fields["currentPlan"]),
			RequestedPlan: decodePlanRef(fields["requestedPlan"]),
			Amount:        money(fields["amount"]),
			PaymentMethod: field(fields, "paymentMethod"),
			PhoneNumber:   field(fields, "phoneNumber"),
			AdminNotes:    field(fields, "adminNotes"),
		}
		sub.PlanRequest = pr
		if sub.Name == "" {
			sub.Name = PlanRequestName(pr.CurrentPlan, pr.RequestedPlan)
		}
		return sub, nil
	}

	sub.Listing = &ListingDetails{
		Description: field(fields, "description"),
		Location:    field(fields, "location"),
		Price:       money(fields["price"]),
		Category:    field(fields, "category"),
		Specialty:   field(fields, "specialty"),
		Experience:  field(fields, "experience"),
	}
	return sub, nil
}

// MarshalJSON emits the flat source record with the envelope fields
// overlaid, so consumers see every field the marketplace sent.
func (s Submission) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.raw)+5)
	if len(s.raw) > 0 {
		for k, v := range s.raw {
			out[k] = v
		}
	} else {
		s.typedFields(out)
	}

	out["id"] = s.Key.ID
	out["submissionType"] = s.Key.Type
	out["type"] = s.Label
	if s.Label == "" {
		out["type"] = s.Key.Type.Label()
	}
	out["name"] = s.Name
	if s.Status != "" {
		out["status"] = s.Status
	}
	return json.Marshal(out)
}

func (s Submission) typedFields(out map[string]any) {
	if s.SubmittedDate != "" {
		out["submittedDate"] = s.SubmittedDate
	}
	if s.CreatedAt != "" {
		out["createdAt"] = s.CreatedAt
	}
	if s.User != nil {
		out["user"] = s.User
	}
	if l := s.Listing; l != nil {
		putString(out, "description", l.Description)
		putString(out, "location", l.Location)
		putString(out, "category", l.Category)
		putString(out, "specialty", l.Specialty)
		putString(out, "experience", l.Experience)
		if l.Price.Valid {
			out["price"] = l.Price.Decimal
		}
	}
	if p := s.PlanRequest; p != nil {
		if p.CurrentPlan != nil {
			out["currentPlan"] = p.CurrentPlan
		}
		if p.RequestedPlan != nil {
			out["requestedPlan"] = p.RequestedPlan
		}
		if p.Amount.Valid {
			out["amount"] = p.Amount.Decimal
		}
		putString(out, "paymentMethod", p.PaymentMethod)
		putString(out, "phoneNumber", p.PhoneNumber)
		putString(out, "adminNotes", p.AdminNotes)
	}
}

func putString(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}

func field(fields map[string]json.RawMessage, key string) string {
	s, _ := looseText(fields[key])
	return s
}

func money(data json.RawMessage) Money {
	var m Money
	_ = m.UnmarshalJSON(data)
	return m
}

func decodeUser(data json.RawMessage) *UserRef {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil
	}
	id, _ := scalarText(fields["id"])
	return &UserRef{
		ID:    EntityID(id),
		Name:  field(fields, "name"),
		Email: field(fields, "email"),
	}
}

func decodePlanRef(data json.RawMessage) *PlanRef {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil
	}
	id, _ := scalarText(fields["id"])
	return &PlanRef{
		ID:    EntityID(id),
		Name:  field(fields, "name"),
		Price: money(fields["price"]),
	}
}
