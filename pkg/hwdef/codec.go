package hwdef

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format for models.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// Encode writes the model to w.
func (m *Model) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// LoadModel reads a model previously written by Encode.
func LoadModel(r io.Reader, f Format) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	if f == FormatYAML {
		// YAML goes through the JSON decoders so both formats share one
		// set of unmarshalers.
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.ADC.ADCs == nil {
		m.ADC.ADCs = []ADCPeripheral{}
	}
	if m.ADC.Inputs == nil {
		m.ADC.Inputs = []ADCInput{}
	}
	if m.Switches == nil {
		m.Switches = []Switch{}
	}
	return &m, nil
}
