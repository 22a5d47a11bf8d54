package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not allowed to perform the operation.
var ErrUnauthorized = errors.New("caller not authorized")

// ErrInvalidState indicates that the operation is illegal for the record's current status.
var ErrInvalidState = errors.New("operation invalid for current state")

// ErrLedgerUnavailable indicates a transport failure talking to the ledger node.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// ErrSubmissionRejected indicates that the ledger declined a broadcast transaction.
// The wrapping error carries the ledger's diagnostic message.
var ErrSubmissionRejected = errors.New("submission rejected by ledger")

// ErrIndeterminate indicates that a broadcast transaction's fate could not be
// determined before the confirmation timeout elapsed. The transaction may still
// confirm later; callers must re-check registry state before retrying.
var ErrIndeterminate = errors.New("transaction outcome indeterminate")
