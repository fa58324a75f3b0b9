package reconcile

import "errors"

var (
	ErrNotFound          = errors.New("payment not found")
	ErrNoMatchingBooking = errors.New("no matching booking")
	ErrReconciliation    = errors.New("reconciliation failed")
	ErrTimeout           = errors.New("store timeout")
)
