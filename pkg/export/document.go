package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatOpenAPI Format = "openapi"
)

// Formats lists the supported export encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatOpenAPI}

var (
	// ErrUnsupportedFormat is returned for unknown export formats.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	// ErrInvalidDocument is returned when an imported form is structurally
	// invalid.
	ErrInvalidDocument = errors.New("export: invalid form document")
)

// ParseFormat resolves a format name case-insensitively. "yml" is accepted
// as an alias for YAML.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "openapi", "oas":
		return FormatOpenAPI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// MarshalYAML encodes form as a YAML document.
func MarshalYAML(form model.Form) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(form); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes and validates a form document. JSON documents are
// valid YAML and decode as well.
func UnmarshalYAML(data []byte) (model.Form, error) {
	var form model.Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return model.Form{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := Validate(form); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

// MarshalJSON encodes form as indented JSON, the same shape the form store
// persists.
func MarshalJSON(form model.Form) ([]byte, error) {
	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks the structure of an imported form: known field types,
// unique positive ids and a sound derivation graph.
func Validate(form model.Form) error {
	seen := make(map[int]bool, len(form.Fields))
	for idx, field := range form.Fields {
		if field.ID <= 0 {
			return fmt.Errorf("%w: field #%d has no positive id", ErrInvalidDocument, idx+1)
		}
		if seen[field.ID] {
			return fmt.Errorf("%w: duplicate field id %d", ErrInvalidDocument, field.ID)
		}
		seen[field.ID] = true
		if !field.Type.Valid() {
			return fmt.Errorf("%w: field%d has unknown type %q", ErrInvalidDocument, field.ID, field.Type)
		}
	}
	if err := model.ValidateGraph(form); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// Encode writes form to w in the requested format.
func Encode(w io.Writer, form model.Form, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = MarshalJSON(form)
	case FormatYAML:
		data, err = MarshalYAML(form)
	case FormatOpenAPI:
		data, err = MarshalOpenAPI(form)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
