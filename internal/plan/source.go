package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a plan source.
type Format int

const (
	// FormatAuto picks JSON when the document starts with '[' or '{', YAML otherwise.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Decode parses data into a generic structure suitable for Load. Syntax
// errors are reported as a *LoadError with reason "malformed source".
func Decode(data []byte, format Format) (any, error) {
	if format == FormatAuto {
		format = sniff(data)
	}

	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, &LoadError{Reason: ReasonMalformedSource, Err: err}
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, &LoadError{Reason: ReasonMalformedSource, Err: errors.New("unexpected data after top-level value")}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Reason: ReasonMalformedSource, Err: err}
		}
	}
	return doc, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

// Select evaluates a JSONPath expression against doc. An empty expression
// returns doc unchanged.
func Select(doc any, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return doc, nil
	}

	value, err := jsonpath.Get(expr, normalizeDocument(doc))
	if err != nil {
		return nil, &LoadError{Reason: ReasonSelectorNoMatches, Err: fmt.Errorf("selector %q: %w", expr, err)}
	}
	if value == nil {
		return nil, &LoadError{Reason: ReasonSelectorNoMatches, Err: fmt.Errorf("selector %q", expr)}
	}
	return value, nil
}

// normalizeDocument converts YAML-style map[any]any nodes to map[string]any so
// that JSONPath evaluation sees a JSON-shaped tree.
func normalizeDocument(doc any) any {
	switch v := doc.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = normalizeDocument(value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = normalizeDocument(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, value := range v {
			out[i] = normalizeDocument(value)
		}
		return out
	}
	return doc
}

// Parse decodes data, applies the optional selector and validates the plan.
func Parse(data []byte, format Format, selector string) (Result, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return Result{}, err
	}
	doc, err = Select(doc, selector)
	if err != nil {
		return Result{}, err
	}
	return Load(doc)
}

// ReadFile reads and validates the plan stored at path.
func ReadFile(path, selector string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		reason := ReasonSourceUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = ReasonSourceNotFound
		}
		return Result{}, &LoadError{Source: path, Reason: reason, Err: err}
	}

	result, err := Parse(data, FormatFromPath(path), selector)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Source == "" {
			loadErr.Source = path
		}
		return Result{}, err
	}
	return result, nil
}
