package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Directive is the parsed form of a scorer argument:
// "path:function" or "path:function:weight".
type Directive struct {
	Path   string
	Symbol string
	Weight float64
}

// ParseDirective parses a scorer directive. The weight segment is
// optional and defaults to DefaultWeight.
func ParseDirective(s string) (Directive, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Directive{}, NewLoadError(s, "",
			"directive must be path:function or path:function:weight")
	}

	d := Directive{Path: parts[0], Symbol: parts[1], Weight: DefaultWeight}
	if len(parts) == 3 {
		w, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Directive{}, NewLoadError(d.Path, d.Symbol,
				fmt.Sprintf("failed parsing the weight %q: %v", parts[2], err))
		}
		d.Weight = w
	}
	return d, nil
}

// String renders the normalized directive with the weight always
// present, in minimal float format. Reparsing the result yields the
// identical Directive, which makes this the stable form for
// fingerprints and persistence.
func (d Directive) String() string {
	return fmt.Sprintf("%s:%s:%s", d.Path, d.Symbol,
		strconv.FormatFloat(d.Weight, 'g', -1, 64))
}
