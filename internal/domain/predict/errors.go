package predict

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for remote invocation failures. The invoker wraps its
// low-level causes with one of these so the orchestrator can classify
// without knowing about AWS error types.
var (
	// ErrEndpointTimeout means the remote call did not complete within the
	// configured bound.
	ErrEndpointTimeout = errors.New("sagemaker endpoint invocation timed out")

	// ErrEndpointUnavailable means the remote infrastructure rejected the
	// call or could not be reached (unreachable, unauthorized, endpoint
	// missing or not in service).
	ErrEndpointUnavailable = errors.New("sagemaker endpoint unavailable")
)

// MalformedInputError reports a client payload that matches neither accepted
// input shape. Fields lists what was wrong, e.g. "question is missing" or
// "context is not a string".
type MalformedInputError struct {
	Fields []string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", strings.Join(e.Fields, "; "))
}

// UnparseableResponseError reports a model reply outside the accepted
// shapes/typing. It indicates model/endpoint contract drift, not a transport
// failure.
type UnparseableResponseError struct {
	Reason string
}

func (e *UnparseableResponseError) Error() string {
	return fmt.Sprintf("unparseable model response: %s", e.Reason)
}

// classifyFailure maps an error from any pipeline stage to its FailureKind.
func classifyFailure(err error) FailureKind {
	var malformed *MalformedInputError
	var unparseable *UnparseableResponseError
	switch {
	case errors.As(err, &malformed):
		return FailureMalformedInput
	case errors.As(err, &unparseable):
		return FailureUnparseableResponse
	case errors.Is(err, ErrEndpointTimeout):
		return FailureEndpointTimeout
	case errors.Is(err, ErrEndpointUnavailable):
		return FailureEndpointUnavailable
	default:
		return FailureEndpointUnavailable
	}
}
