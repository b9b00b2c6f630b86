package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON writes v as indented JSON to outputPath, or to stdout when the
// path is "-".
func WriteJSON(outputPath string, v any) error {
	if outputPath == "-" {
		return Encode(os.Stdout, v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	return os.WriteFile(outputPath, append(data, '\n'), 0o644)
}

// Encode writes v as indented JSON followed by a newline.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
