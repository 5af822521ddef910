package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ismaalAdmin/internal/models"
)

type pendingSource struct {
	path []string
	key  string
}

var pendingSources = map[models.SubmissionType]pendingSource{
	models.SubmissionProduct:      {path: []string{"api", "products", "pending"}, key: "products"},
	models.SubmissionProfessional: {path: []string{"api", "professionals", "pending"}, key: "professionals"},
	models.SubmissionBusiness:     {path: []string{"api", "businesses", "pending"}, key: "businesses"},
	models.SubmissionPlanRequest:  {path: []string{"api", "upgrade-requests"}, key: "requests"},
}

// PendingSubmissions lists the raw records of one submission source.
func (c *Client) PendingSubmissions(ctx context.Context, t models.SubmissionType) ([]json.RawMessage, error) {
	src, ok := pendingSources[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSubmissionType, string(t))
	}
	b, err := c.do(ctx, http.MethodGet, c.endpoint(src.path...), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection(b, src.key)
}

type statusUpdate struct {
	Status     models.SubmissionStatus `json:"status"`
	AdminNotes *string                 `json:"adminNotes"`
}

// ModerateSubmission approves or rejects one submission on the endpoint that
// owns its type. Notes are only sent for plan requests.
func (c *Client) ModerateSubmission(ctx context.Context, key models.SubmissionKey, decision models.SubmissionStatus, notes string) error {
	var action, verb string
	switch decision {
	case models.StatusApproved:
		action, verb = ActionApprove, "approve"
	case models.StatusRejected:
		action, verb = ActionReject, "reject"
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDecision, string(decision))
	}

	switch key.Type {
	case models.SubmissionPlanRequest:
		body := statusUpdate{Status: decision}
		if notes != "" {
			body.AdminNotes = &notes
		}
		_, err := c.mutate(ctx, action, http.MethodPut,
			c.endpoint("api", "admin", "upgrade-requests", key.ID.String(), "status"), body)
		return err
	case models.SubmissionProduct, models.SubmissionProfessional, models.SubmissionBusiness:
		_, err := c.mutate(ctx, action, http.MethodPut,
			c.endpoint("api", key.Type.Resource(), key.ID.String(), verb), nil)
		return err
	}
	return fmt.Errorf("%w: %q", models.ErrUnknownSubmissionType, string(key.Type))
}

// DeleteSubmission removes a listing submission. Plan requests have no
// delete route.
func (c *Client) DeleteSubmission(ctx context.Context, key models.SubmissionKey) error {
	switch key.Type {
	case models.SubmissionProduct, models.SubmissionProfessional, models.SubmissionBusiness:
		_, err := c.mutate(ctx, ActionDelete, http.MethodDelete,
			c.endpoint("api", key.Type.Resource(), key.ID.String()), nil)
		return err
	}
	return fmt.Errorf("%w: %q", models.ErrUnknownSubmissionType, string(key.Type))
}
