package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sefineh-ai/sagemaker-gateway/internal/domain/predict"
)

// PredictService is the slice of the orchestrator the HTTP layer depends on.
type PredictService interface {
	Predict(ctx context.Context, in predict.PredictInput) predict.Envelope
	PredictBatch(ctx context.Context, items []predict.PredictInput) []predict.Envelope
	ModelInfo(ctx context.Context) predict.ModelInfo
	Configured() bool
}

// PredictHandler handles single and batch prediction requests.
type PredictHandler struct {
	service PredictService
}

// NewPredictHandler creates a new PredictHandler instance.
func NewPredictHandler(service PredictService) *PredictHandler {
	return &PredictHandler{service: service}
}

// predictionRequest is the request body for POST /predict and each element
// of POST /predict/batch. Data stays raw; shape validation belongs to the
// normalizer, not the handler.
type predictionRequest struct {
	Data      any            `json:"data"`
	RequestID string         `json:"request_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (r predictionRequest) toInput() predict.PredictInput {
	return predict.PredictInput{
		Data:      r.Data,
		RequestID: r.RequestID,
		Metadata:  r.Metadata,
	}
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	env := h.service.Predict(r.Context(), req.toInput())
	writeJSON(w, envelopeStatus(env), env)
}

// PredictBatch handles POST /predict/batch. Per-item failures live inside
// their envelopes; the response is 200 whenever the batch itself was
// well-formed.
func (h *PredictHandler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON array of prediction requests")
		return
	}

	items := make([]predict.PredictInput, len(reqs))
	for i, req := range reqs {
		items[i] = req.toInput()
	}

	envelopes := h.service.PredictBatch(r.Context(), items)
	if envelopes == nil {
		envelopes = []predict.Envelope{}
	}
	writeJSON(w, http.StatusOK, envelopes)
}
