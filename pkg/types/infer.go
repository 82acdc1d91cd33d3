package types

import "github.com/usestring/xmltypes/pkg/xmltypes"

// InferSchemaOutput is the output type for the xmltypes_infer_schema tool.
type InferSchemaOutput struct {
	// JSON Schema (draft 2020-12) describing the JSON form of the samples
	Schema any `json:"schema"`

	RootType string `json:"root_type"`
	Samples  int    `json:"samples"`

	Validation *xmltypes.Validation `json:"validation,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}
