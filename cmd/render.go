package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dormmatch/internal/domain"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// errRequestFailed signals a failed envelope whose errors were already
// written to stderr.
var errRequestFailed = errors.New("request failed")

func validateOutputFormat(_ *cobra.Command, _ []string) error {
	switch outputFormat {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", outputFormat, formatJSON, formatYAML)
	}
}

// renderEnvelope prints the data of a successful envelope to stdout. A failed
// envelope has its errors printed to stderr and yields errRequestFailed.
func renderEnvelope(cmd *cobra.Command, envelope domain.Envelope) error {
	if !envelope.OK() {
		for _, msg := range envelope.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
		}
		printHint(cmd, envelope.Cause)
		return errRequestFailed
	}
	return render(cmd.OutOrStdout(), envelope.Data)
}

func render(w io.Writer, value any) error {
	switch outputFormat {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return encoder.Close()
	default:
		encoded, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	}
}
