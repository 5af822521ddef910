package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SubmissionType names the marketplace resource a submission came from. It
// decides which endpoints moderate the record.
type SubmissionType string

const (
	SubmissionProduct      SubmissionType = "product"
	SubmissionProfessional SubmissionType = "professional"
	SubmissionBusiness     SubmissionType = "business"
	SubmissionPlanRequest  SubmissionType = "planRequest"
)

var submissionTypes = []SubmissionType{
	SubmissionProduct,
	SubmissionProfessional,
	SubmissionBusiness,
	SubmissionPlanRequest,
}

// SubmissionTypes returns every known type in aggregation order.
func SubmissionTypes() []SubmissionType {
	out := make([]SubmissionType, len(submissionTypes))
	copy(out, submissionTypes)
	return out
}

// ParseSubmissionType accepts the canonical names case-insensitively, plus
// the plan-request / plan_request spellings used on the command line.
func ParseSubmissionType(s string) (SubmissionType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "plan-request", "plan_request", "planrequest":
		return SubmissionPlanRequest, nil
	}
	for _, t := range submissionTypes {
		if strings.ToLower(string(t)) == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubmissionType, s)
}

func (t SubmissionType) Valid() bool {
	switch t {
	case SubmissionProduct, SubmissionProfessional, SubmissionBusiness, SubmissionPlanRequest:
		return true
	}
	return false
}

// Label is the display name shown in the type column.
func (t SubmissionType) Label() string {
	switch t {
	case SubmissionProduct:
		return "Product"
	case SubmissionProfessional:
		return "Professional"
	case SubmissionBusiness:
		return "Business"
	case SubmissionPlanRequest:
		return "Plan Request"
	}
	return string(t)
}

// Resource is the plural collection segment used in listing endpoints. Plan
// requests live under a separate route and have none.
func (t SubmissionType) Resource() string {
	switch t {
	case SubmissionProduct:
		return "products"
	case SubmissionProfessional:
		return "professionals"
	case SubmissionBusiness:
		return "businesses"
	}
	return ""
}

// SubmissionStatus is the moderation state as reported by the marketplace.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "PENDING"
	StatusApproved SubmissionStatus = "APPROVED"
	StatusRejected SubmissionStatus = "REJECTED"
	StatusActive   SubmissionStatus = "ACTIVE"
)

// NormalizeStatus upper-cases a raw status; an absent status is pending.
func NormalizeStatus(raw string) SubmissionStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return StatusPending
	}
	return SubmissionStatus(s)
}

// SubmissionKey is the identity of a submission. Ids are only unique within
// a type, so the pair is the key everywhere.
type SubmissionKey struct {
	Type SubmissionType `json:"submissionType"`
	ID   EntityID       `json:"id"`
}

// ParseSubmissionKey builds a key from path or argument strings.
func ParseSubmissionKey(typ, id string) (SubmissionKey, error) {
	t, err := ParseSubmissionType(typ)
	if err != nil {
		return SubmissionKey{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return SubmissionKey{}, fmt.Errorf("%w: submission id is required", ErrMissingID)
	}
	if err := EntityID(id).Validate(); err != nil {
		return SubmissionKey{}, err
	}
	return SubmissionKey{Type: t, ID: EntityID(id)}, nil
}

func (k SubmissionKey) String() string {
	return string(k.Type) + ":" + string(k.ID)
}

// UserRef is the submitter attached to a submission.
type UserRef struct {
	ID    EntityID `json:"id,omitempty"`
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
}

// PlanRef is a plan referenced by an upgrade request.
type PlanRef struct {
	ID    EntityID `json:"id,omitempty"`
	Name  string   `json:"name,omitempty"`
	Price Money    `json:"price"`
}

// ListingDetails carries the fields shared by product, professional and
// business submissions.
type ListingDetails struct {
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Price       Money  `json:"price"`
	Category    string `json:"category,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	Experience  string `json:"experience,omitempty"`
}

// PlanRequestDetails carries the fields of a plan upgrade request.
type PlanRequestDetails struct {
	CurrentPlan   *PlanRef `json:"currentPlan,omitempty"`
	RequestedPlan *PlanRef `json:"requestedPlan,omitempty"`
	Amount        Money    `json:"amount"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	AdminNotes    string   `json:"adminNotes,omitempty"`
}

// Submission is one moderation candidate. Exactly one of Listing and
// PlanRequest is set, according to Key.Type. Values are copied freely; only
// Status is ever rewritten after decoding.
type Submission struct {
	Key           SubmissionKey
	Label         string
	Status        string
	Name          string
	SubmittedDate string
	CreatedAt     string
	User          *UserRef
	Listing       *ListingDetails
	PlanRequest   *PlanRequestDetails

	raw map[string]json.RawMessage
}

// WithStatus returns a copy carrying the given status.
func (s Submission) WithStatus(status SubmissionStatus) Submission {
	s.Status = string(status)
	return s
}

// EffectiveStatus is the upper-cased status, PENDING when absent.
func (s Submission) EffectiveStatus() SubmissionStatus {
	return NormalizeStatus(s.Status)
}

// EffectiveDate prefers the submission date over the creation date. The
// second result is false when neither parses.
func (s Submission) EffectiveDate() (time.Time, bool) {
	raw := s.SubmittedDate
	if strings.TrimSpace(raw) == "" {
		raw = s.CreatedAt
	}
	return ParseDate(raw)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the timestamp formats the marketplace API emits.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PlanRequestName builds the display name of an upgrade request.
func PlanRequestName(current, requested *PlanRef) string {
	from, to := "Current", "Requested"
	if current != nil && current.Name != "" {
		from = current.Name
	}
	if requested != nil && requested.Name != "" {
		to = requested.Name
	}
	return fmt.Sprintf("Plan Upgrade: %s → %s", from, to)
}
