package characters

import "github.com/OPSAF/Anime/internal/errors"

var (
	// ErrNetwork means a request failed or answered with a non-200 status.
	ErrNetwork = errors.NewSentinel("network error")
	// ErrParse means no selector strategy matched the markup.
	ErrParse = errors.NewSentinel("parse error")
	// ErrEmptyResult means the markup parsed but yielded no usable characters.
	ErrEmptyResult = errors.NewSentinel("empty result")
	// ErrNoMatch is returned by a single selector rule that did not match.
	ErrNoMatch = errors.NewSentinel("no match")
)
