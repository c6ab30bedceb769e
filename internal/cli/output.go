package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// printOutput prints data in the requested format.
func printOutput(w io.Writer, format string, data interface{}) error {
	if format == "yaml" {
		return printYAML(w, data)
	}
	return printJSON(w, data)
}

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printYAML(w io.Writer, data interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(data)
}
