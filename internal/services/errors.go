package services

import "errors"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingID          = errors.New("id is required")
)
