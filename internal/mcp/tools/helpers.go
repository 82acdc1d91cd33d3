// Package tools contains MCP tool implementations for xmltypes.
package tools

import (
	"fmt"
	"strings"

	"github.com/usestring/xmltypes/pkg/contenttype"
	"github.com/usestring/xmltypes/pkg/xmlschema"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// MIME type constant.
const MimeJSON = "application/json"

// ResultURIPrefix is the resource URI prefix of cached generation results.
const ResultURIPrefix = "xmltypes://result/"

// ResultURI returns the resource URI of the cached result with the given key.
func ResultURI(key string) string {
	return ResultURIPrefix + key
}

// ResultKey extracts the cache key from a result resource URI.
func ResultKey(uri string) (string, error) {
	key, ok := strings.CutPrefix(uri, ResultURIPrefix)
	if !ok || key == "" || strings.Contains(key, "/") {
		return "", ErrInvalidInput(fmt.Sprintf("invalid result URI: %s", uri))
	}
	return key, nil
}

// sampleRequest is the part of a tool input shared by every tool.
type sampleRequest struct {
	XML             string
	Samples         []string
	ContentType     string
	XPath           string
	Strict          *bool
	OptionalMissing *bool
	Split           *bool
	Validate        *bool
}

// collectSamples gathers the documents of a request and rejects anything
// that is not an XML document or exceeds the configured input budget.
func (d *Deps) collectSamples(req sampleRequest) ([][]byte, error) {
	var bodies [][]byte
	if req.XML != "" {
		bodies = append(bodies, []byte(req.XML))
	}
	for _, s := range req.Samples {
		if s != "" {
			bodies = append(bodies, []byte(s))
		}
	}
	if len(bodies) == 0 {
		return nil, ErrInvalidInput("either xml or samples is required")
	}

	total := 0
	for i, body := range bodies {
		total += len(body)
		if cat := contenttype.Detect(req.ContentType, body); cat != contenttype.XML {
			return nil, ErrInvalidInput(fmt.Sprintf("sample %d is %s, not XML", i, cat))
		}
	}
	if limit := d.Config.MaxInputBytes; limit > 0 && total > limit {
		return nil, ErrInvalidInput(fmt.Sprintf("input is %d bytes, limit is %d", total, limit))
	}
	return bodies, nil
}

// options applies the request overrides on top of the configured defaults.
func (d *Deps) options(req sampleRequest, format, goPackage string) xmltypes.Options {
	cfg := d.Config
	opts := xmltypes.Options{
		Format: cfg.Format,
		XPath:  req.XPath,
		Merge: xmlschema.MergeOptions{
			StrictKinds:          boolOr(req.Strict, cfg.StrictKinds),
			OptionalMissingItems: boolOr(req.OptionalMissing, cfg.OptionalMissing),
		},
		SplitChildSlots: boolOr(req.Split, cfg.SplitChildSlots),
		GoPackage:       cfg.GoPackage,
		Validate:        boolOr(req.Validate, cfg.ValidateSamples),
	}
	if format != "" {
		opts.Format = format
	}
	if goPackage != "" {
		opts.GoPackage = goPackage
	}
	return opts
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
