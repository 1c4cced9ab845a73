package domain

import "errors"

var (
	ErrInvalidScope  = errors.New("invalid usage scope")
	ErrEmptyEntityID = errors.New("entity id is required")
	ErrUsageLocked   = errors.New("usage record set is being updated, retry")
)
