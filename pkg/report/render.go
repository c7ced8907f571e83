package report

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/retarget/pkg/errors"
)

// Render writes r to w in format. FormatAuto is resolved against w.
func Render(w io.Writer, r *Report, format Format) error {
	if format == FormatAuto {
		format = DetectFormat(w)
	}

	var err error
	switch format {
	case FormatTerminal:
		_, err = io.WriteString(w, renderLines(r, termPainter{}))
	case FormatText:
		_, err = io.WriteString(w, renderLines(r, plainPainter{}))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(r); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(r)
	case FormatXML:
		err = renderXML(w, r)
	case FormatMarkdown:
		_, err = io.WriteString(w, renderMarkdown(r, isTerminal(w)))
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported format %s", format)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot render %s report", format)
	}
	return nil
}
