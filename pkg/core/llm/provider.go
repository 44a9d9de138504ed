// Package llm abstracts the text-completion providers used for narrative
// deal insights.
package llm

import (
	"context"
)

// Provider is the interface all completion backends implement.
// Options carries provider-specific knobs (model override, api_key,
// response_format) without widening the interface per backend.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// JSONOptions builds an options map requesting a structured JSON object
// response where the backend supports it.
func JSONOptions(model string) map[string]interface{} {
	opts := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	if model != "" {
		opts["model"] = model
	}
	return opts
}
