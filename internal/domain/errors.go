package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrGatewayFailure   = errors.New("gateway failure")
)
