// Package completion defines the narrow contract for the language-model
// completion service and a schema type for structured output requests.
package completion

import "context"

// Message is one turn in a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Property is a JSON-schema node used to constrain structured responses.
type Property struct {
	Type                 string               `json:"type"`
	Description          string               `json:"description,omitempty"`
	Enum                 []string             `json:"enum,omitempty"`
	Items                *Property            `json:"items,omitempty"`
	Properties           map[string]*Property `json:"properties,omitempty"`
	Required             []string             `json:"required,omitempty"`
	AdditionalProperties *bool                `json:"additionalProperties,omitempty"`
}

// Schema is a named top-level object schema. Responses in structured mode
// must validate against it or the call fails upstream.
type Schema struct {
	Name                 string               `json:"-"`
	Properties           map[string]*Property `json:"properties"`
	Required             []string             `json:"required"`
	AdditionalProperties bool                 `json:"additionalProperties"`
}

// Object returns a strict object Property: every property required and no
// additional properties permitted.
func Object(props map[string]*Property) *Property {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	no := false
	return &Property{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: &no,
	}
}

// Options control one completion call. When Schema is non-nil the call runs
// in structured mode and the returned string is the schema-validated JSON
// payload; otherwise free text is returned.
type Options struct {
	Model       string
	Temperature float64
	Schema      *Schema
}

// Service is the completion service contract.
type Service interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}
