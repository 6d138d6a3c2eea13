package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDiscountApplied    = errors.New("discount already applied to purchase")
	ErrMisconfigured      = errors.New("required setting is missing")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrAmountMismatch     = errors.New("paid amount or currency does not match purchase")
	ErrSessionBusy        = errors.New("purchase session is already being processed")
)
