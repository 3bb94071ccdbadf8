package errors

import "errors"

// ErrOptimisticLock signals that a record was modified by a concurrent
// operation and the caller should reload before retrying.
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")
