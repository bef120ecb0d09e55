package domain

import "errors"

// Validation errors
var (
	ErrNameRequired  = errors.New("name is required")
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidStatus = errors.New("invalid status")
	ErrSelfDeal      = errors.New("cannot create a deal with yourself")
)

// Lookup and state errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrDealNotFound = errors.New("deal not found")
	ErrDealDecided  = errors.New("deal is already decided")
)
