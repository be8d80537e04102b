package ai

import "errors"

// ErrUpstream marks any failure of the remote completion service:
// unreachable host, non-success status, empty candidate set, or a
// missing or invalid API key.
var ErrUpstream = errors.New("upstream AI service error")
