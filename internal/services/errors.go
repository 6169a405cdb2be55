package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP codes: validation -> 400, not found -> 404, conflict -> 409.
var (
	ErrWaitingReasonRequired = errors.New("waiting reason is required when status is WAITING")
	ErrInvalidStatus         = errors.New("invalid task status")
	ErrInvalidPriority       = errors.New("invalid task priority")
	ErrTimerAlreadyRunning   = errors.New("timer already running")
	ErrNoOpenTimer           = errors.New("no timer running")
	ErrDuplicateName         = errors.New("name already exists")
	ErrSystemTag             = errors.New("system tags cannot be deleted")
	ErrEmptyTitle            = errors.New("title must not be empty")
	ErrPatternRequired       = errors.New("recurrence pattern is required for recurring tasks")
)
