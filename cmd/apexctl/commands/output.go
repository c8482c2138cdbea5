package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultIndent = 2
	masked        = "***"
	visiblePrefix = 4
)

func writeOutput(w io.Writer, format string, data interface{}) error {
	switch format {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(defaultIndent)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding output to YAML: %w", err)
		}
		return encoder.Close()
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultIndent))
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding output to JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}
}

// maskSecret keeps a short prefix of long secrets so they can be told apart.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= visiblePrefix*2 {
		return masked
	}
	return secret[:visiblePrefix] + masked
}
