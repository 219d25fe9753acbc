package qualidoo

import "errors"

// ErrorKind discriminates API failures so callers can branch on the
// category without inspecting message text or dynamic types.
type ErrorKind string

const (
	// The service rejected the request.
	KindAuthenticationFailed ErrorKind = "authentication_failed"
	KindAccessForbidden      ErrorKind = "access_forbidden"
	KindNotFound             ErrorKind = "not_found"
	KindRateLimited          ErrorKind = "rate_limited"
	KindAPIError             ErrorKind = "api_error"

	// The local deadline for a poll loop expired.
	KindTimeout ErrorKind = "timeout"
	// The job reached its terminal state but the analysis itself failed.
	KindAnalysisFailed ErrorKind = "analysis_failed"
	// A local precondition failed before any request was sent.
	KindInvalidInput ErrorKind = "invalid_input"
)

// APIError is the error type for every failure the Qualidoo service (or the
// client's own preconditions) can report. Connection-level failures are not
// wrapped in APIError; they propagate as plain errors from the transport.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
