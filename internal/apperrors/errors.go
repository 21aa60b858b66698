package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStoreUnavailable indicates a transient store or network failure. It is
// propagated to the caller as-is; there is no internal retry.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrPartialSequence indicates that a multi-step operation (upgrade, payout)
// failed after one or more steps had already committed. Nothing is rolled back
// automatically; the saga record identifies the last committed step.
var ErrPartialSequence = errors.New("partial sequence failure")
