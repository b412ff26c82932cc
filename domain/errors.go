package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrInvalidListing covers malformed or type-inconsistent listing
	// configuration, rejected before any state change
	ErrInvalidListing = errors.New("invalid listing configuration")
	// ErrNotAuthorized covers seller/buyer/admin permission failures
	ErrNotAuthorized = errors.New("not authorized")
	// ErrBadState covers operations invalid for the listing's current phase
	ErrBadState = errors.New("operation invalid for listing state")
	// ErrInsufficientPayment covers amounts below the required threshold
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrTransferFailed covers asset or payment movement failures reported
	// by a transfer provider
	ErrTransferFailed = errors.New("transfer failed")

	ErrMarketplaceDisabled = errors.New("marketplace disabled")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidCurrency     = errors.New("invalid currency")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
)
