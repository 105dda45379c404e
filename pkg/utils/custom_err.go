package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDreamNotFound      = errors.New("dream not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrFeatureNotIncluded = errors.New("feature not included in plan")
	ErrDatabaseError      = errors.New("database error")
	ErrAIProviderError    = errors.New("ai provider error")
)
