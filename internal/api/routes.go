// Route registration and go-chi router setup.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sefineh-ai/sagemaker-gateway/internal/api/handlers"
	"github.com/sefineh-ai/sagemaker-gateway/internal/version"
)

// NewRouter creates and configures a chi router with all gateway routes.
// Every route is public: the gateway sits behind deployment-level access
// control, and auth is explicitly out of scope here.
func NewRouter(service handlers.PredictService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	predictHandler := handlers.NewPredictHandler(service)
	modelHandler := handlers.NewModelHandler(service)

	r.Get("/", bannerHandler)
	r.Get("/health", modelHandler.Health) // GET /health — load balancer / probe target
	r.Get("/model/info", modelHandler.Info)

	r.Route("/predict", func(r chi.Router) {
		r.Post("/", predictHandler.Predict)           // POST /predict
		r.Post("/batch", predictHandler.PredictBatch) // POST /predict/batch
	})

	return r
}

// bannerHandler serves the service banner at the root path.
func bannerHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	body := map[string]any{
		"message": "SageMaker question-answering gateway",
		"version": version.Version,
		"endpoints": map[string]string{
			"health":        "/health",
			"predict":       "/predict",
			"predict_batch": "/predict/batch",
			"model_info":    "/model/info",
		},
	}
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck
}
