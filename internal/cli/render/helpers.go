package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

// FormatFor returns the output format requested by the runtime configuration.
// JSON wins when both --json and --yaml are given.
func FormatFor(cfg *config.RuntimeConfig) Format {
	switch {
	case cfg == nil:
		return FormatText
	case cfg.JSON:
		return FormatJSON
	case cfg.YAML:
		return FormatYAML
	default:
		return FormatText
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}
