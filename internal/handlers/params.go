package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/utils"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// queryInt reads an optional integer query value; anything unparsable is 0.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

func submissionKey(r *http.Request) (models.SubmissionKey, error) {
	return models.ParseSubmissionKey(getParam(r, "type"), getParam(r, "id"))
}

type ctxKey int

const (
	adminKey ctxKey = iota
	claimsKey
)

// WithAdmin stores the authenticated admin and token claims on ctx.
func WithAdmin(ctx context.Context, user *models.AdminUser, claims *utils.Claims) context.Context {
	ctx = context.WithValue(ctx, adminKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// AdminFrom returns the admin stored by WithAdmin.
func AdminFrom(ctx context.Context) (*models.AdminUser, bool) {
	user, ok := ctx.Value(adminKey).(*models.AdminUser)
	return user, ok && user != nil
}

func claimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

func entityQuery(r *http.Request) services.EntityQuery {
	return services.EntityQuery{
		Q:       r.URL.Query().Get("q"),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
	}
}

func entityID(r *http.Request) models.EntityID {
	return models.EntityID(strings.TrimSpace(getParam(r, "id")))
}
