package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ismaalAdmin/internal/models"
)

// Login authenticates an admin. Only users with the ADMIN role are accepted.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error) {
	b, err := c.do(ctx, http.MethodPost, c.endpoint("api", "auth", "admin", "login"), req, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusForbidden:
				return nil, ErrNotAdmin
			case http.StatusUnauthorized:
				return nil, ErrInvalidCredentials
			case http.StatusNotFound:
				return nil, ErrUserNotFound
			}
		}
		return nil, err
	}

	var resp struct {
		User *models.AdminUser `json:"user"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.User == nil || resp.User.ID.IsZero() {
		return nil, ErrMalformedResponse
	}
	if !resp.User.IsAdmin() {
		c.logger.Warn("login refused for non-admin user", "userID", resp.User.ID.String())
		return nil, ErrNotAdmin
	}
	return resp.User, nil
}
