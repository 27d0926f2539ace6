package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sefineh-ai/sagemaker-gateway/internal/domain/predict"
)

func TestModelHandler_Health_Configured(t *testing.T) {
	t.Parallel()

	handler := NewModelHandler(&stubService{configured: true})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Health status = %d; want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v; want healthy", resp["status"])
	}
	if resp["sagemaker_configured"] != true {
		t.Errorf("sagemaker_configured = %v; want true", resp["sagemaker_configured"])
	}
	if resp["timestamp"] == "" || resp["timestamp"] == nil {
		t.Error("timestamp missing from health response")
	}
}

func TestModelHandler_Health_NotConfigured(t *testing.T) {
	t.Parallel()

	handler := NewModelHandler(&stubService{configured: false})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.Health(w, req)

	// Missing configuration is reported, not treated as a failure.
	if w.Code != http.StatusOK {
		t.Fatalf("Health status = %d; want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if resp["sagemaker_configured"] != false {
		t.Errorf("sagemaker_configured = %v; want false", resp["sagemaker_configured"])
	}
}

func TestModelHandler_Info(t *testing.T) {
	t.Parallel()

	svc := &stubService{infoFn: func(context.Context) predict.ModelInfo {
		return predict.ModelInfo{
			ModelName:    "distilbert-base-uncased-distilled-squad",
			ModelType:    "Hugging Face Question-Answering",
			EndpointName: "qa-endpoint",
			Region:       "eu-north-1",
			Status:       "in-service",
			InstanceType: "ml.m5.xlarge",
		}
	}}
	handler := NewModelHandler(svc)

	req := httptest.NewRequest("GET", "/model/info", nil)
	w := httptest.NewRecorder()
	handler.Info(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Info status = %d; want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if resp["status"] != "in-service" {
		t.Errorf("status = %v; want in-service", resp["status"])
	}
	if resp["endpoint_name"] != "qa-endpoint" {
		t.Errorf("endpoint_name = %v; want qa-endpoint", resp["endpoint_name"])
	}
}

func TestModelHandler_Info_ErrorInsideBody(t *testing.T) {
	t.Parallel()

	svc := &stubService{infoFn: func(context.Context) predict.ModelInfo {
		return predict.ModelInfo{
			ModelName: "distilbert-base-uncased-distilled-squad",
			Status:    "error",
			Error:     "describe endpoint failed",
		}
	}}
	handler := NewModelHandler(svc)

	req := httptest.NewRequest("GET", "/model/info", nil)
	w := httptest.NewRecorder()
	handler.Info(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Info status = %d; want %d — failures are carried in the body", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if resp["error"] != "describe endpoint failed" {
		t.Errorf("error = %v; want the describe failure", resp["error"])
	}
}
