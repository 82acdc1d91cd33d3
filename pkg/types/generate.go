package types

import "github.com/usestring/xmltypes/pkg/xmltypes"

// GenerateOutput is the output type for the xmltypes_generate tool.
type GenerateOutput struct {
	// Generated source in the requested format
	Code     string `json:"code"`
	Format   string `json:"format"`
	RootType string `json:"root_type"`

	// Number of element trees merged (documents or XPath matches)
	Samples int `json:"samples"`

	Declarations []DeclSummary `json:"declarations,omitempty"`

	// Validation of the samples against the inferred schema, when requested
	Validation *xmltypes.Validation `json:"validation,omitempty"`

	// Resource holding the full result while it stays cached
	Resource *ResourceRef `json:"resource,omitempty"`

	// Cached reports whether the result was served from the result cache
	Cached bool `json:"cached,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}
