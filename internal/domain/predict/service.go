package predict

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sefineh-ai/sagemaker-gateway/pkg/uuid"
)

const (
	defaultInvokeTimeout    = 30 * time.Second
	defaultBatchConcurrency = 4

	// modelType is fixed: the gateway fronts extractive QA endpoints only.
	modelType = "Hugging Face Question-Answering"
)

// Config is the read-only per-process configuration of the orchestrator.
type Config struct {
	ModelName    string
	ModelID      string
	EndpointName string
	Region       string

	// InvokeTimeout bounds each remote call. Zero means the 30s default.
	InvokeTimeout time.Duration

	// BatchConcurrency bounds the fan-out of PredictBatch. Zero means 4.
	BatchConcurrency int
}

// Service orchestrates one prediction: normalize the client payload, invoke
// the endpoint, parse the model reply, and fold any failure into the
// envelope. Nothing propagates past this boundary as an error.
type Service struct {
	invoker Invoker
	cfg     Config
	logger  *slog.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(invoker Invoker, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.InvokeTimeout <= 0 {
		cfg.InvokeTimeout = defaultInvokeTimeout
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}
	return &Service{invoker: invoker, cfg: cfg, logger: logger}
}

// canonicalPayload is the single normalized shape sent to the endpoint,
// regardless of how the client phrased its input.
type canonicalPayload struct {
	Inputs InferenceRequest `json:"inputs"`
}

// Predict runs one client payload through the full pipeline and always
// returns an envelope: prediction on success, error message on any failure.
func (s *Service) Predict(ctx context.Context, in PredictInput) Envelope {
	env := Envelope{
		ModelName: s.cfg.ModelName,
		RequestID: in.RequestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if env.RequestID == "" {
		env.RequestID = uuid.NewV7().String()
	}

	req, err := NormalizeInput(in.Data)
	if err != nil {
		return s.fail(env, err)
	}

	payload, err := json.Marshal(canonicalPayload{Inputs: req})
	if err != nil {
		return s.fail(env, err)
	}

	invokeCtx, cancel := context.WithTimeout(ctx, s.cfg.InvokeTimeout)
	defer cancel()

	started := time.Now()
	raw, err := s.invoker.Invoke(invokeCtx, payload)
	elapsedMS := float64(time.Since(started)) / float64(time.Millisecond)
	env.ProcessingTimeMS = &elapsedMS

	if err != nil {
		return s.fail(env, err)
	}

	pred, err := ParsePrediction(raw)
	if err != nil {
		return s.fail(env, err)
	}

	env.Prediction = &pred
	return env
}

// PredictBatch processes items independently with bounded fan-out. The
// returned slice matches the input in length and order regardless of
// completion order; one item's failure lands only in that item's envelope.
func (s *Service) PredictBatch(ctx context.Context, items []PredictInput) []Envelope {
	out := make([]Envelope, len(items))

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, item := range items {
		g.Go(func() error {
			out[i] = s.Predict(ctx, item)
			return nil
		})
	}
	// Predict never returns an error; Wait only synchronizes.
	_ = g.Wait()
	return out
}

// ModelInfo queries the endpoint descriptor and maps it to a status summary.
// Describe failures end up in the Error field; this never panics or errors.
func (s *Service) ModelInfo(ctx context.Context) ModelInfo {
	info := ModelInfo{
		ModelName:    s.cfg.ModelName,
		ModelType:    modelType,
		ModelID:      s.cfg.ModelID,
		EndpointName: s.cfg.EndpointName,
		Region:       s.cfg.Region,
	}

	if s.cfg.EndpointName == "" {
		info.Status = "not-found"
		info.Error = "endpoint name not configured"
		return info
	}

	describeCtx, cancel := context.WithTimeout(ctx, s.cfg.InvokeTimeout)
	defer cancel()

	details, err := s.invoker.Describe(describeCtx)
	if err != nil {
		s.logger.Error("describe endpoint failed",
			"endpoint", s.cfg.EndpointName, "error", err)
		info.Status = "error"
		info.Error = err.Error()
		return info
	}

	info.Status = statusSummary(details.Status)
	info.InstanceType = details.InstanceType
	info.EndpointARN = details.EndpointARN
	info.CreatedAt = details.CreatedAt
	info.LastModified = details.LastModified
	return info
}

// Configured reports whether the required endpoint configuration is present.
// It never touches the remote endpoint.
func (s *Service) Configured() bool {
	return s.cfg.EndpointName != "" && s.cfg.Region != ""
}

// fail folds err into the envelope and logs it. Model contract drift is
// logged at warn with its own message so it can be told apart from transport
// failures when operating the endpoint.
func (s *Service) fail(env Envelope, err error) Envelope {
	env.Kind = classifyFailure(err)
	msg := err.Error()
	env.Error = &msg

	switch env.Kind {
	case FailureUnparseableResponse:
		s.logger.Warn("model response contract drift",
			"request_id", env.RequestID, "error", msg)
	case FailureMalformedInput:
		s.logger.Info("rejected malformed input",
			"request_id", env.RequestID, "error", msg)
	default:
		s.logger.Error("endpoint invocation failed",
			"request_id", env.RequestID, "kind", string(env.Kind), "error", msg)
	}
	return env
}

// statusSummary maps the provider's endpoint status to the gateway's
// summary vocabulary. "InService" is the only healthy state; other provider
// states pass through lowercased for operator visibility.
func statusSummary(raw string) string {
	switch raw {
	case "InService":
		return "in-service"
	case "":
		return "error"
	default:
		return strings.ToLower(raw)
	}
}
