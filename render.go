package x12

import (
	"errors"
	"strings"
)

// ErrNothingToRender indicates a model with no segment records
var ErrNothingToRender = errors.New("model has no segments to render")

// Render serializes a validated model back to X12 text using the
// delimiters captured at parse time (or the conventional defaults when
// absent). Segments render as id + element-separator-joined fields +
// segment-terminator, with trailing empty fields stripped. The ISA
// segment renders fixed-width exactly as captured. When the model
// retains its interchange envelope, the ISA/GS and recomputed GE/IEA
// trailers are emitted around the transaction; otherwise the
// transaction renders alone.
//
// When pretty is set, segments are separated by the terminator plus a
// newline rather than the terminator alone.
func Render(m *TransactionModel, pretty bool) ([]byte, error) {
	delims := m.Delimiters
	if delims == (Delimiters{}) {
		delims = DefaultDelimiters()
	}

	segments := m.Segments()
	if len(segments) == 0 {
		return nil, ErrNothingToRender
	}

	var lines []string
	if len(m.envelope.isa) > 0 {
		lines = append(lines, strings.Join(m.envelope.isa, string(delims.Element)))
	}
	if len(m.envelope.gs) > 0 {
		lines = append(lines, renderFields(m.envelope.gs, delims))
	}
	for _, seg := range segments {
		lines = append(lines, renderFields(seg.Raw, delims))
	}
	if len(m.envelope.gs) > 0 {
		lines = append(lines, renderGroupTrailer(m, delims))
	}
	if len(m.envelope.isa) > 0 {
		lines = append(lines, renderInterchangeTrailer(m, delims))
	}

	separator := string(delims.Terminator)
	if pretty {
		separator += "\n"
	}
	out := strings.Join(lines, separator) + separator
	return []byte(out), nil
}

// renderFields joins a segment's fields with the element separator,
// stripping trailing empty fields per X12 convention. Repetition and
// component separators inside field values are preserved verbatim.
func renderFields(fields []string, delims Delimiters) string {
	trimmed := removeTrailingEmptyElements(fields)
	return strings.Join(trimmed, string(delims.Element))
}

// renderGroupTrailer rebuilds the GE trailer for the rendered content:
// a single transaction set, with the control number from the captured
// GS (or GE) segment
func renderGroupTrailer(m *TransactionModel, delims Delimiters) string {
	control := ""
	if len(m.envelope.gs) > gsIndexControlNumber {
		control = m.envelope.gs[gsIndexControlNumber]
	} else if len(m.envelope.ge) > geIndexControlNumber {
		control = m.envelope.ge[geIndexControlNumber]
	}
	return strings.Join(
		[]string{geSegmentId, "1", control},
		string(delims.Element),
	)
}

// renderInterchangeTrailer rebuilds the IEA trailer for the rendered
// content: a single functional group, with the control number from
// the captured ISA segment
func renderInterchangeTrailer(
	m *TransactionModel,
	delims Delimiters,
) string {
	control := ""
	if len(m.envelope.isa) > isaIndexControlNumber {
		control = m.envelope.isa[isaIndexControlNumber]
	} else if len(m.envelope.iea) > ieaIndexControlNumber {
		control = m.envelope.iea[ieaIndexControlNumber]
	}
	return strings.Join(
		[]string{ieaSegmentId, "1", control},
		string(delims.Element),
	)
}

// removeTrailingEmptyElements removes trailing empty elements from a
// slice of elements. These are truncated in segments: a segment
// specifying 5 elements where the latter two are optional renders as
// `SEGID*A*B*C~`, not `SEGID*A*B*C**~`.
func removeTrailingEmptyElements(elements []string) []string {
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i] != "" {
			newSlice := make([]string, i+1)
			copy(newSlice, elements)
			return newSlice
		}
	}
	return []string{}
}
