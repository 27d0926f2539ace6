package predict

import (
	"encoding/json"
	"fmt"
	"math"
)

// ParsePrediction normalizes the raw model response body into a Prediction.
// Hugging Face QA endpoints reply either with a bare object
// {"answer","score","start","end"} or with a one-element array containing
// such an object; both are accepted and yield the same Prediction. Every
// other shape — empty or multi-element arrays, objects missing required
// keys, wrong field types — fails with *UnparseableResponseError.
//
// Score is reported as the model sent it, even outside [0,1]; the model's
// own calibration is authoritative. Start/End must be non-negative integers
// with End >= Start.
func ParsePrediction(raw []byte) (Prediction, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return Prediction{}, &UnparseableResponseError{
			Reason: fmt.Sprintf("response body is not valid JSON: %v", err),
		}
	}

	obj, err := predictionObject(body)
	if err != nil {
		return Prediction{}, err
	}

	answer, ok := obj["answer"].(string)
	if !ok {
		return Prediction{}, &UnparseableResponseError{Reason: "answer is missing or not a string"}
	}
	score, ok := numberField(obj, "score")
	if !ok {
		return Prediction{}, &UnparseableResponseError{Reason: "score is missing or not a number"}
	}
	start, ok := offsetField(obj, "start")
	if !ok {
		return Prediction{}, &UnparseableResponseError{Reason: "start is missing or not a non-negative integer"}
	}
	end, ok := offsetField(obj, "end")
	if !ok {
		return Prediction{}, &UnparseableResponseError{Reason: "end is missing or not a non-negative integer"}
	}
	if end < start {
		return Prediction{}, &UnparseableResponseError{
			Reason: fmt.Sprintf("end (%d) precedes start (%d)", end, start),
		}
	}

	return Prediction{Answer: answer, Score: score, Start: start, End: end}, nil
}

// predictionObject unwraps the two accepted response shapes into one object.
// Downstream code never branches on object-vs-array again.
func predictionObject(body any) (map[string]any, error) {
	switch v := body.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) != 1 {
			// A multi-element array has no defined selection rule; picking
			// one silently could mask model misconfiguration.
			return nil, &UnparseableResponseError{
				Reason: fmt.Sprintf("expected a single prediction, got an array of %d elements", len(v)),
			}
		}
		obj, ok := v[0].(map[string]any)
		if !ok {
			return nil, &UnparseableResponseError{Reason: "array element is not a prediction object"}
		}
		return obj, nil
	default:
		return nil, &UnparseableResponseError{
			Reason: fmt.Sprintf("response is neither an object nor an array (got %T)", body),
		}
	}
}

// numberField extracts key as a float64.
func numberField(m map[string]any, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

// offsetField extracts key as a non-negative integer. JSON numbers decode as
// float64, so integerness is checked explicitly; 5.0 passes, 5.5 does not.
func offsetField(m map[string]any, key string) (int, bool) {
	f, ok := m[key].(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
