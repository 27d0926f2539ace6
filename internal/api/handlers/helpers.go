// Shared handler helpers: JSON writing and envelope status mapping.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sefineh-ai/sagemaker-gateway/internal/domain/predict"
)

const headerContentType = "Content-Type"

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// envelopeStatus maps a prediction envelope to its HTTP status code.
// Client-side faults are 4xx; remote faults are gateway errors so callers
// can tell their own mistakes from endpoint trouble.
func envelopeStatus(env predict.Envelope) int {
	switch env.Kind {
	case predict.FailureNone:
		return http.StatusOK
	case predict.FailureMalformedInput:
		return http.StatusBadRequest
	case predict.FailureEndpointTimeout:
		return http.StatusGatewayTimeout
	default:
		// EndpointUnavailable and UnparseableResponse: the gateway reached
		// for the model and got nothing usable back.
		return http.StatusBadGateway
	}
}
