package numfmt

import (
	"strings"
	"unicode/utf8"
)

// FormatTabular renders every value with opts and left-pads the results with
// spaces so their decimal separators line up in a column.
func (e *Engine) FormatTabular(values []Value, opts FormatOptions) ([]string, error) {
	cfg, err := e.locale(opts.Locale)
	if err != nil {
		return nil, err
	}

	rendered := make([]string, len(values))
	widths := make([]int, len(values))
	widest := 0
	for i, v := range values {
		out, err := e.Beautify(v, opts)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
		head := out
		if idx := strings.Index(out, cfg.Decimal); idx >= 0 {
			head = out[:idx]
		}
		widths[i] = utf8.RuneCountInString(head)
		if widths[i] > widest {
			widest = widths[i]
		}
	}

	for i := range rendered {
		rendered[i] = strings.Repeat(" ", widest-widths[i]) + rendered[i]
	}
	return rendered, nil
}
