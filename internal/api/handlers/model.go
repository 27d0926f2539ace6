package handlers

import (
	"net/http"
	"time"
)

// ModelHandler serves model metadata and the health probe.
type ModelHandler struct {
	service PredictService
}

// NewModelHandler creates a new ModelHandler instance.
func NewModelHandler(service PredictService) *ModelHandler {
	return &ModelHandler{service: service}
}

// healthResponse is the body of GET /health. SagemakerConfigured reflects
// whether the required configuration is present, not whether the endpoint is
// reachable — health never makes a remote call.
type healthResponse struct {
	Status              string `json:"status"`
	SagemakerConfigured bool   `json:"sagemaker_configured"`
	Timestamp           string `json:"timestamp"`
}

// Info handles GET /model/info. Describe failures are reported inside the
// info body; the route itself stays 200 so monitoring can read the status
// summary either way.
func (h *ModelHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ModelInfo(r.Context()))
}

// Health handles GET /health.
func (h *ModelHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:              "healthy",
		SagemakerConfigured: h.service.Configured(),
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	})
}
