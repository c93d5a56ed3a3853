package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Credential errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrBadPassword       = errors.New("password does not match")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateDocument = errors.New("document number already registered")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
)

// Customer / advisor errors
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrAdvisorNotFound   = errors.New("advisor not found")
	ErrCustomerNotLinked = errors.New("customer has no linked account")
)

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
)
