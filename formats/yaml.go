package formats

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML writes the structured value as a YAML document
var YAML = &OutputFormat{
	Name: "yaml",
	Render: func(w io.Writer, r Result) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.Value); err != nil {
			return err
		}
		return enc.Close()
	},
}
