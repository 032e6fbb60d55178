package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/homefax/internal/models"
	"gopkg.in/yaml.v3"
)

// DumpJSON writes v as 2-space indented JSON without HTML escaping.
func DumpJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

// DumpYAML writes v as 2-space indented YAML.
func DumpYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return nil
}

// ParseHomes reads a raw dump of either a single home or a list of homes,
// or a workbook written by WriteXLSX.
func ParseHomes(r io.Reader, format Format) ([]models.Home, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	switch format {
	case FormatJSON:
		return parseJSONHomes(data)
	case FormatYAML:
		return parseYAMLHomes(data)
	case FormatXLSX:
		return ParseXLSXHomes(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q cannot be parsed", ErrUnsupportedFormat, format)
	}
}

func parseJSONHomes(data []byte) ([]models.Home, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var home models.Home
		if err := json.Unmarshal(trimmed, &home); err != nil {
			return nil, fmt.Errorf("failed to parse json home: %w", err)
		}
		return []models.Home{home}, nil
	}
	var homes []models.Home
	if err := json.Unmarshal(trimmed, &homes); err != nil {
		return nil, fmt.Errorf("failed to parse json homes: %w", err)
	}
	return homes, nil
}

func parseYAMLHomes(data []byte) ([]models.Home, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml homes: %w", err)
	}
	if len(doc.Content) == 0 {
		return []models.Home{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		var home models.Home
		if err := root.Decode(&home); err != nil {
			return nil, fmt.Errorf("failed to decode yaml home: %w", err)
		}
		return []models.Home{home}, nil
	}
	var homes []models.Home
	if err := root.Decode(&homes); err != nil {
		return nil, fmt.Errorf("failed to decode yaml homes: %w", err)
	}
	return homes, nil
}
