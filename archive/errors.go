package archive

import (
	"errors"
	"fmt"
)

var (
	ErrArchiveDisabled = errors.New("archive: feature disabled")
	ErrDigestNotFound  = errors.New("archive: digest not found")
	ErrDigestRequired  = errors.New("archive: digest record required")
	ErrRetentionWindow = errors.New("archive: retention window must be positive")
)

// NotFoundError reports a missing archive record by resource and lookup key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrDigestNotFound.Error()
	}
	resource := e.Resource
	if resource == "" {
		resource = "digest"
	}
	if e.Key == "" {
		return fmt.Sprintf("archive: %s not found", resource)
	}
	return fmt.Sprintf("archive: %s not found: key=%s", resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrDigestNotFound
}
