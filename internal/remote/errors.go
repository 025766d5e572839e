package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RejectionError is a non-success response from the remote inventory
// service. Detail carries the server-provided message when the body was
// structured, else a generic fallback; it is surfaced to the operator
// verbatim and never retried automatically.
type RejectionError struct {
	StatusCode int
	Detail     string
}

func (e *RejectionError) Error() string {
	return e.Detail
}

// AsRejection unwraps err into a RejectionError if one is in its chain.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// newRejectionError extracts a human-readable detail message from a
// response body. The remote service returns either {"detail": "..."} or a
// bare string; anything else falls through to the generic message.
func newRejectionError(statusCode int, body []byte, generic string) *RejectionError {
	detail := generic
	if len(body) > 0 {
		var structured struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &structured); err == nil && structured.Detail != "" {
			detail = structured.Detail
		} else {
			var plain string
			if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
				detail = plain
			}
		}
	}
	return &RejectionError{StatusCode: statusCode, Detail: detail}
}

// wrapTransport marks a network-level failure (connection refused, timeout,
// malformed response). Search falls back to the local snapshot on these;
// sale and transfer submissions surface them as failures.
func wrapTransport(op string, err error) error {
	return fmt.Errorf("%s: calling inventory service: %w", op, err)
}
