package lifecycle

import "errors"

// Sentinel errors for the lifecycle service layer.
var (
	ErrCreativeNotFound = errors.New("creative not found")
	ErrConfigNotFound   = errors.New("learning config not found")
	ErrSnapshotNotFound = errors.New("metric snapshot not found")
)
