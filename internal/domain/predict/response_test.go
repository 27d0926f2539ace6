package predict

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePrediction_ObjectAndSingleElementArrayAgree(t *testing.T) {
	t.Parallel()

	object := []byte(`{"answer":"Paris","score":0.9,"start":0,"end":5}`)
	array := []byte(`[{"answer":"Paris","score":0.9,"start":0,"end":5}]`)

	fromObject, err := ParsePrediction(object)
	if err != nil {
		t.Fatalf("ParsePrediction(object) error = %v; want nil", err)
	}
	fromArray, err := ParsePrediction(array)
	if err != nil {
		t.Fatalf("ParsePrediction(array) error = %v; want nil", err)
	}
	if fromObject != fromArray {
		t.Errorf("object parse %+v != array parse %+v; both shapes must normalize identically", fromObject, fromArray)
	}
	want := Prediction{Answer: "Paris", Score: 0.9, Start: 0, End: 5}
	if fromObject != want {
		t.Errorf("ParsePrediction = %+v; want %+v", fromObject, want)
	}
}

func TestParsePrediction_ScoreOutsideRangeKeptAsIs(t *testing.T) {
	t.Parallel()

	pred, err := ParsePrediction([]byte(`{"answer":"x","score":1.7,"start":0,"end":1}`))
	if err != nil {
		t.Fatalf("ParsePrediction error = %v; want nil", err)
	}
	if pred.Score != 1.7 {
		t.Errorf("Score = %v; want 1.7 reported as-is, never clamped", pred.Score)
	}
}

func TestParsePrediction_Unparseable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string // substring expected in the error
	}{
		{"missing score", `{"answer":"Paris","start":0,"end":5}`, "score"},
		{"missing answer", `{"score":0.9,"start":0,"end":5}`, "answer"},
		{"missing start", `{"answer":"Paris","score":0.9,"end":5}`, "start"},
		{"missing end", `{"answer":"Paris","score":0.9,"start":0}`, "end"},
		{"end before start", `{"answer":"Paris","score":0.9,"start":5,"end":2}`, "precedes"},
		{"negative start", `{"answer":"Paris","score":0.9,"start":-1,"end":5}`, "start"},
		{"fractional start", `{"answer":"Paris","score":0.9,"start":0.5,"end":5}`, "start"},
		{"string score", `{"answer":"Paris","score":"high","start":0,"end":5}`, "score"},
		{"numeric answer", `{"answer":12,"score":0.9,"start":0,"end":5}`, "answer"},
		{"empty array", `[]`, "array of 0"},
		{"multi-element array", `[{"answer":"a","score":0.5,"start":0,"end":1},{"answer":"b","score":0.4,"start":0,"end":1}]`, "array of 2"},
		{"array of scalars", `["Paris"]`, "not a prediction object"},
		{"bare string", `"Paris"`, "neither an object nor an array"},
		{"bare number", `42`, "neither an object nor an array"},
		{"invalid json", `{answer:`, "not valid JSON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParsePrediction([]byte(tc.raw))
			if err == nil {
				t.Fatalf("ParsePrediction(%s) error = nil; want UnparseableResponseError", tc.raw)
			}
			var unparseable *UnparseableResponseError
			if !errors.As(err, &unparseable) {
				t.Fatalf("ParsePrediction error type = %T; want *UnparseableResponseError", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q; want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestParsePrediction_IntegralFloatOffsetsAccepted(t *testing.T) {
	t.Parallel()

	pred, err := ParsePrediction([]byte(`{"answer":"Paris","score":0.95,"start":0.0,"end":5.0}`))
	if err != nil {
		t.Fatalf("ParsePrediction error = %v; want nil", err)
	}
	if pred.Start != 0 || pred.End != 5 {
		t.Errorf("offsets = (%d,%d); want (0,5)", pred.Start, pred.End)
	}
}

func TestParsePrediction_EqualOffsetsAccepted(t *testing.T) {
	t.Parallel()

	// end == start is a legal empty span.
	if _, err := ParsePrediction([]byte(`{"answer":"","score":0.1,"start":3,"end":3}`)); err != nil {
		t.Errorf("ParsePrediction error = %v; want nil for end == start", err)
	}
}
