package formats

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tidwall/pretty"
)

var jsonOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// JSON writes the structured value, indented
var JSON = &OutputFormat{
	Name: "json",
	Render: func(w io.Writer, r Result) error {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(r.Value); err != nil {
			return err
		}
		_, err := w.Write(pretty.PrettyOptions(buf.Bytes(), jsonOptions))
		return err
	},
}
