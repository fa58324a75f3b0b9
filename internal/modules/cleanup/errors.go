package cleanup

import "errors"

var (
	ErrCleanup = errors.New("duplicate cleanup failed")
	ErrTimeout = errors.New("store timeout")
)
