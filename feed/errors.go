package feed

import (
	"errors"
	"fmt"
)

var (
	ErrFeedEmpty       = errors.New("feed: at least one article is required")
	ErrFeedInvalid     = errors.New("feed: payload failed validation")
	ErrFeedUnreadable  = errors.New("feed: payload could not be decoded")
	ErrArticleInvalid  = errors.New("feed: article is invalid")
	ErrRendererMissing = errors.New("feed: renderer not configured")
)

// ArticleInvalidError reports which article in the feed failed validation.
type ArticleInvalidError struct {
	Index  int
	Reason string
}

func (e *ArticleInvalidError) Error() string {
	if e == nil {
		return ErrArticleInvalid.Error()
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s: index=%d", ErrArticleInvalid.Error(), e.Index)
	}
	return fmt.Sprintf("%s: index=%d: %s", ErrArticleInvalid.Error(), e.Index, e.Reason)
}

func (e *ArticleInvalidError) Unwrap() error {
	return ErrArticleInvalid
}

// DecodeError wraps JSON decoding failures for feed payloads so transports
// can map them to client errors.
type DecodeError struct {
	Source string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ErrFeedUnreadable.Error()
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: source=%s: %v", ErrFeedUnreadable.Error(), e.Source, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrFeedUnreadable.Error(), e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return ErrFeedUnreadable
}
