package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ismaalAdmin/internal/marketplace"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/utils"
)

func TestWriteErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"endpoint missing", &marketplace.EndpointUnavailableError{Action: "APPROVE", StatusCode: 404}, http.StatusNotImplemented, marketplace.EndpointNotFoundCode},
		{"in flight", moderation.ErrInFlight, http.StatusConflict, CodeInFlight},
		{"no transition", fmt.Errorf("approve: %w", moderation.ErrNoTransition), http.StatusConflict, CodeNoTransition},
		{"not found", moderation.ErrSubmissionNotFound, http.StatusNotFound, CodeNotFound},
		{"unknown type", models.ErrUnknownSubmissionType, http.StatusBadRequest, CodeBadRequest},
		{"dot id", models.EntityID("..").Validate(), http.StatusBadRequest, CodeBadRequest},
		{"not admin", marketplace.ErrNotAdmin, http.StatusForbidden, "NOT_ADMIN"},
		{"bad credentials", marketplace.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"no user", marketplace.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"upstream", &marketplace.APIError{StatusCode: 500, Status: "500 Internal Server Error", Message: "db down"}, http.StatusBadGateway, CodeUpstream},
		{"form", models.FieldErrors{"name": "Plan name is required"}, http.StatusUnprocessableEntity, CodeValidation},
		{"token", utils.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

type stubSubmissionAPI struct {
	notes  string
	err    error
	called int
}

func (s *stubSubmissionAPI) PendingSubmissions(ctx context.Context, t models.SubmissionType) ([]json.RawMessage, error) {
	if t != models.SubmissionProduct {
		return nil, nil
	}
	return []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Lamp","status":"PENDING"}`),
		json.RawMessage(`{"id":2,"name":"Chair","status":"REJECTED"}`),
	}, nil
}

func (s *stubSubmissionAPI) ModerateSubmission(ctx context.Context, key models.SubmissionKey, decision models.SubmissionStatus, notes string) error {
	s.called++
	s.notes = notes
	return s.err
}

func (s *stubSubmissionAPI) DeleteSubmission(ctx context.Context, key models.SubmissionKey) error {
	s.called++
	return s.err
}

func asAdmin(r *http.Request) *http.Request {
	user := &models.AdminUser{ID: "9", Role: models.RoleAdmin}
	claims := &utils.Claims{AdminID: "9", Role: models.RoleAdmin, SessionID: "sid"}
	return r.WithContext(WithAdmin(r.Context(), user, claims))
}

func decisionRequestFor(typ, id, action, body string) *http.Request {
	target := fmt.Sprintf("/api/submissions/%s/%s/%s?:type=%s&:id=%s", typ, id, action, typ, id)
	return asAdmin(httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
}

func TestSubmissionHandlerApprove(t *testing.T) {
	api := &stubSubmissionAPI{}
	h := &SubmissionHandler{Service: services.NewSubmissionService(api, nil, 10, nil)}

	rec := httptest.NewRecorder()
	h.Approve(rec, decisionRequestFor("product", "1", "approve", `{"adminNotes":"ok"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var got map[string]any
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["status"] != "APPROVED" || got["submissionType"] != "product" || api.notes != "ok" {
		t.Fatalf("unexpected body %v notes=%q", got, api.notes)
	}

	rec = httptest.NewRecorder()
	h.Approve(rec, decisionRequestFor("product", "1", "approve", ""))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second approve status = %d", rec.Code)
	}
	if api.called != 1 {
		t.Fatalf("expected one upstream call, got %d", api.called)
	}

	rec = httptest.NewRecorder()
	h.Reject(rec, decisionRequestFor("widget", "1", "reject", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type status = %d", rec.Code)
	}
}

func TestSubmissionHandlerEndpointUnavailable(t *testing.T) {
	api := &stubSubmissionAPI{err: &marketplace.EndpointUnavailableError{Action: "REJECT", StatusCode: 405}}
	h := &SubmissionHandler{Service: services.NewSubmissionService(api, nil, 10, nil)}

	rec := httptest.NewRecorder()
	h.Reject(rec, decisionRequestFor("product", "1", "reject", ""))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "REJECT endpoint not available on server") {
		t.Fatalf("unexpected body %s", rec.Body)
	}

	// the held entry keeps its status
	rec = httptest.NewRecorder()
	h.Get(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/api/submissions/product/1?:type=product&:id=1", nil)))
	var got map[string]any
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["status"] != "PENDING" {
		t.Fatalf("status changed after failure: %v", got["status"])
	}
}

func TestSubmissionHandlerList(t *testing.T) {
	h := &SubmissionHandler{Service: services.NewSubmissionService(&stubSubmissionAPI{}, nil, 10, nil)}

	rec := httptest.NewRecorder()
	h.List(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/api/submissions?filter=rejected", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Items  []map[string]any `json:"items"`
		Filter string           `json:"filter"`
		Counts struct {
			All      int `json:"all"`
			Rejected int `json:"rejected"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Filter != "rejected" || len(got.Items) != 1 || got.Counts.All != 2 || got.Counts.Rejected != 1 {
		t.Fatalf("unexpected list %+v", got)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/submissions", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", rec.Code)
	}
}

type stubPlanAPI struct{ calls int }

func (s *stubPlanAPI) Plans(ctx context.Context) ([]models.Plan, error) { return nil, nil }
func (s *stubPlanAPI) Plan(ctx context.Context, id models.EntityID) (models.Plan, error) {
	return models.Plan{ID: id}, nil
}
func (s *stubPlanAPI) UpdatePlan(ctx context.Context, id models.EntityID, p models.PlanPayload) (models.Plan, error) {
	s.calls++
	return models.Plan{ID: id, Name: models.Text(p.Name)}, nil
}
func (s *stubPlanAPI) DeletePlan(ctx context.Context, id models.EntityID) error { return nil }

func TestPlanHandlerUpdate(t *testing.T) {
	api := &stubPlanAPI{}
	h := &PlanHandler{Service: &services.PlanService{API: api}}

	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/plans/4?:id=4", strings.NewReader(`{"name":"","price":"abc"}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Fields["name"] != "Plan name is required" || body.Fields["price"] == "" {
		t.Fatalf("unexpected fields %v", body.Fields)
	}
	if api.calls != 0 {
		t.Fatal("invalid form reached the marketplace")
	}

	rec = httptest.NewRecorder()
	form := `{"name":"Pro","description":"All","price":"5","allowedBusinesses":2,"allowedProducts":"10","profile_status":"Verified"}`
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/plans/4?:id=4", strings.NewReader(form)))
	if rec.Code != http.StatusOK || api.calls != 1 {
		t.Fatalf("status = %d calls=%d body=%s", rec.Code, api.calls, rec.Body)
	}
}
