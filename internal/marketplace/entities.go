package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"ismaalAdmin/internal/models"
)

// listRecords fetches a collection and decodes each record into T. Records
// that cannot be decoded are logged and left out.
func listRecords[T any](ctx context.Context, c *Client, key string, parts ...string) ([]T, error) {
	b, err := c.do(ctx, http.MethodGet, c.endpoint(parts...), nil, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeCollection(b, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			c.logger.Warn("skipping undecodable record", "collection", key, "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func getRecord[T any](ctx context.Context, c *Client, key string, parts ...string) (T, error) {
	var v T
	b, err := c.do(ctx, http.MethodGet, c.endpoint(parts...), nil, nil)
	if err != nil {
		return v, err
	}
	if err := decodeRecord(b, key, &v); err != nil {
		return v, err
	}
	return v, nil
}

func (c *Client) deleteRecord(ctx context.Context, resource string, id models.EntityID) error {
	_, err := c.mutate(ctx, ActionDelete, http.MethodDelete, c.endpoint("api", resource, id.String()), nil)
	return err
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return listRecords[models.Product](ctx, c, "products", "api", "products")
}

func (c *Client) Product(ctx context.Context, id models.EntityID) (models.Product, error) {
	return getRecord[models.Product](ctx, c, "product", "api", "products", id.String())
}

func (c *Client) DeleteProduct(ctx context.Context, id models.EntityID) error {
	return c.deleteRecord(ctx, "products", id)
}

func (c *Client) Professionals(ctx context.Context) ([]models.Professional, error) {
	return listRecords[models.Professional](ctx, c, "professionals", "api", "professionals")
}

func (c *Client) Professional(ctx context.Context, id models.EntityID) (models.Professional, error) {
	return getRecord[models.Professional](ctx, c, "professional", "api", "professionals", id.String())
}

func (c *Client) DeleteProfessional(ctx context.Context, id models.EntityID) error {
	return c.deleteRecord(ctx, "professionals", id)
}

func (c *Client) Businesses(ctx context.Context) ([]models.Business, error) {
	return listRecords[models.Business](ctx, c, "businesses", "api", "businesses")
}

func (c *Client) Business(ctx context.Context, id models.EntityID) (models.Business, error) {
	return getRecord[models.Business](ctx, c, "business", "api", "businesses", id.String())
}

// UpdateBusiness patches a business on behalf of adminID. Missing routes are
// not reclassified here; the server answers with its own message.
func (c *Client) UpdateBusiness(ctx context.Context, id models.EntityID, update models.BusinessUpdate, adminID models.EntityID) (models.Business, error) {
	var out models.Business
	header := http.Header{}
	header.Set("x-user-id", adminID.String())
	b, err := c.do(ctx, http.MethodPatch, c.endpoint("api", "businesses", id.String()), update, header)
	if err != nil {
		return out, err
	}
	if err := checkJSON(b); err != nil {
		return out, err
	}
	if hasBody(b) {
		if err := decodeRecord(b, "business", &out); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (c *Client) DeleteBusiness(ctx context.Context, id models.EntityID) error {
	return c.deleteRecord(ctx, "businesses", id)
}

func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	return listRecords[models.Plan](ctx, c, "plans", "api", "plans")
}

func (c *Client) Plan(ctx context.Context, id models.EntityID) (models.Plan, error) {
	return getRecord[models.Plan](ctx, c, "plan", "api", "plans", id.String())
}

func (c *Client) UpdatePlan(ctx context.Context, id models.EntityID, payload models.PlanPayload) (models.Plan, error) {
	var out models.Plan
	b, err := c.mutate(ctx, ActionUpdate, http.MethodPut, c.endpoint("api", "plans", id.String()), payload)
	if err != nil {
		return out, err
	}
	if hasBody(b) {
		if err := decodeRecord(b, "plan", &out); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (c *Client) DeletePlan(ctx context.Context, id models.EntityID) error {
	return c.deleteRecord(ctx, "plans", id)
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	return listRecords[models.User](ctx, c, "users", "api", "users")
}

func (c *Client) User(ctx context.Context, id models.EntityID) (models.User, error) {
	return getRecord[models.User](ctx, c, "user", "api", "users", id.String())
}

func (c *Client) DeleteUser(ctx context.Context, id models.EntityID) error {
	return c.deleteRecord(ctx, "users", id)
}

func hasBody(b []byte) bool { return len(bytes.TrimSpace(b)) > 0 }
