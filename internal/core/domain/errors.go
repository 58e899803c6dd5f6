package domain

import "errors"

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrPaymentNotFound   = errors.New("payment not found")

	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrTokenMismatch      = errors.New("capability token mismatch")
	ErrTokenAlreadyUsed   = errors.New("capability token already used")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
)
