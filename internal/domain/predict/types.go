// Package predict is the request-normalization and inference-invocation
// adapter: it reconciles the accepted client input shapes into one canonical
// inference payload, drives the remote endpoint call, and normalizes the
// model's heterogeneous output shapes into one Prediction record.
package predict

import (
	"context"
	"time"
)

// InferenceRequest is the canonical question/context pair sent to the model.
// Both fields are non-empty by the time an invocation is attempted.
type InferenceRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// Prediction is the normalized answer from an extractive QA model.
// Start/End are character offsets into the submitted context; the model
// contract says Answer == context[Start:End], which this adapter trusts
// rather than re-verifies.
type Prediction struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// FailureKind classifies why a prediction failed. It drives the HTTP status
// mapping in the API layer and never appears in response bodies.
type FailureKind string

const (
	FailureNone                FailureKind = ""
	FailureMalformedInput      FailureKind = "malformed_input"
	FailureEndpointTimeout     FailureKind = "endpoint_timeout"
	FailureEndpointUnavailable FailureKind = "endpoint_unavailable"
	FailureUnparseableResponse FailureKind = "unparseable_response"
)

// Envelope is the uniform success-or-error wrapper returned for every
// prediction, single or batch. Exactly one of Prediction and Error is non-nil.
type Envelope struct {
	Prediction       *Prediction `json:"prediction"`
	ModelName        string      `json:"model_name"`
	RequestID        string      `json:"request_id"`
	Error            *string     `json:"error"`
	Timestamp        string      `json:"timestamp"`
	ProcessingTimeMS *float64    `json:"processing_time_ms"`

	// Kind is the failure classification for status mapping; not serialized.
	Kind FailureKind `json:"-"`
}

// PredictInput is one client payload plus its correlation metadata.
// Data is the raw decoded JSON body of the "data" field; RequestID is carried
// through unchanged when supplied and generated when empty. Metadata is
// opaque and unused by the core.
type PredictInput struct {
	Data      any
	RequestID string
	Metadata  map[string]any
}

// ModelInfo describes the deployed model and its endpoint.
type ModelInfo struct {
	ModelName    string     `json:"model_name"`
	ModelType    string     `json:"model_type"`
	ModelID      string     `json:"model_id"`
	EndpointName string     `json:"endpoint_name"`
	Region       string     `json:"region"`
	Status       string     `json:"status"`
	InstanceType string     `json:"instance_type,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	EndpointARN  string     `json:"endpoint_arn,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// EndpointDetails is the raw describe-endpoint result handed up by the
// invoker. Status is the provider's own status string (e.g. "InService").
type EndpointDetails struct {
	Status       string
	InstanceType string
	EndpointARN  string
	CreatedAt    *time.Time
	LastModified *time.Time
}

// Invoker sends a canonical payload to the remote model endpoint and
// describes the endpoint's deployment state. Implementations classify their
// failures into ErrEndpointTimeout / ErrEndpointUnavailable.
type Invoker interface {
	// Invoke performs one remote round trip and returns the raw response body.
	Invoke(ctx context.Context, payload []byte) ([]byte, error)

	// Describe returns the endpoint's deployment details.
	Describe(ctx context.Context) (EndpointDetails, error)
}
