package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the acting role is not permitted to perform the operation.
var ErrUnauthorized = errors.New("role not authorized for this action")

// ErrInvalidState indicates that the operation is not valid for the file's current status,
// e.g. approving a file that is already COMPLETED or REJECTED.
var ErrInvalidState = errors.New("operation not valid in current state")
