package predict

import "fmt"

// NormalizeInput converts a loosely-shaped client payload into an
// InferenceRequest. Two shapes are accepted, tried in this order:
//
//  1. {"question": ..., "context": ...} at the top level
//  2. {"inputs": {"question": ..., "context": ...}}
//
// The first shape whose keys are both present and both non-empty strings
// wins. Non-string values (numbers, null, nested objects) are rejected, not
// stringified. Anything else fails with *MalformedInputError naming the
// offending fields.
func NormalizeInput(data any) (InferenceRequest, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return InferenceRequest{}, &MalformedInputError{
			Fields: []string{"input data is not an object with question and context"},
		}
	}

	if req, problems := questionContextPair(m); len(problems) == 0 {
		return req, nil
	}

	if inner, ok := m["inputs"].(map[string]any); ok {
		req, problems := questionContextPair(inner)
		if len(problems) == 0 {
			return req, nil
		}
		return InferenceRequest{}, &MalformedInputError{Fields: problems}
	}

	_, problems := questionContextPair(m)
	return InferenceRequest{}, &MalformedInputError{Fields: problems}
}

// questionContextPair extracts question/context from one mapping level.
// An empty problems slice means both fields were present non-empty strings.
func questionContextPair(m map[string]any) (InferenceRequest, []string) {
	var problems []string
	question, problem := stringField(m, "question")
	if problem != "" {
		problems = append(problems, problem)
	}
	context, problem := stringField(m, "context")
	if problem != "" {
		problems = append(problems, problem)
	}
	if len(problems) > 0 {
		return InferenceRequest{}, problems
	}
	return InferenceRequest{Question: question, Context: context}, nil
}

// stringField returns the value of key as a non-empty string, or a
// human-readable problem description.
func stringField(m map[string]any, key string) (string, string) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Sprintf("%s is missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Sprintf("%s is not a string", key)
	}
	if s == "" {
		return "", fmt.Sprintf("%s is empty", key)
	}
	return s, ""
}
