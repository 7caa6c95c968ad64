package x12

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Severity indicates how a diagnostic affects model acceptance
type Severity uint

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DiagnosticKind distinguishes shape findings (lengths, patterns, code
// tables, types) from semantic findings (cross-field, cross-segment,
// loop and transaction constraints) and structural warnings raised by
// the loop engine.
type DiagnosticKind uint

const (
	KindShape DiagnosticKind = iota
	KindSegmentSemantic
	KindLoopSemantic
	KindTransactionSemantic
	KindStructure
)

func (k DiagnosticKind) String() string {
	return [...]string{
		"shape",
		"segment_semantic",
		"loop_semantic",
		"transaction_semantic",
		"structure",
	}[k]
}

func (k DiagnosticKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Diagnostic codes
const (
	CodeRequired        = "required"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeInvalidCode     = "invalid_code"
	CodeInvalidType     = "invalid_type"
	CodeUnknownField    = "unknown_field"
	CodeFieldUsage      = "field_usage"
	CodeDuplicateCode   = "duplicate_code"
	CodeMissingSegment  = "missing_segment"
	CodeMissingLoop     = "missing_loop"
	CodeRepeatBounds    = "repeat_bounds"
	CodeHierarchy       = "hierarchy"
	CodeSegmentCount    = "segment_count"
	CodeBalance         = "balance"
	CodeControlNumber   = "control_number"
	CodeEnvelopeCount   = "envelope_count"
	CodeFunctionalId    = "functional_identifier"
	CodeUnexpectedOrder = "unexpected_order"
	CodeDroppedSegment  = "dropped_segment"
	CodeValidatorFault  = "validator_fault"
)

// Location identifies where within an interchange a diagnostic was
// observed. Counts are one-indexed; zero means "not applicable".
type Location struct {
	Interchange int    `json:"interchange,omitempty"`
	Group       int    `json:"group,omitempty"`
	Transaction int    `json:"transaction,omitempty"`
	Segment     int    `json:"segment,omitempty"`
	Field       int    `json:"field,omitempty"`
	Path        string `json:"path,omitempty"`
}

func (l Location) String() string {
	var b strings.Builder
	if l.Interchange > 0 {
		_, _ = fmt.Fprintf(&b, "interchange %d ", l.Interchange)
	}
	if l.Group > 0 {
		_, _ = fmt.Fprintf(&b, "group %d ", l.Group)
	}
	if l.Transaction > 0 {
		_, _ = fmt.Fprintf(&b, "transaction %d ", l.Transaction)
	}
	if l.Segment > 0 {
		_, _ = fmt.Fprintf(&b, "segment %d ", l.Segment)
	}
	if l.Field > 0 {
		_, _ = fmt.Fprintf(&b, "field %d ", l.Field)
	}
	if l.Path != "" {
		_, _ = fmt.Fprintf(&b, "path %s", l.Path)
	}
	return strings.TrimSpace(b.String())
}

// Diagnostic is a single structured validation finding
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Kind     DiagnosticKind `json:"kind"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Location Location       `json:"location"`
}

func (d Diagnostic) String() string {
	loc := d.Location.String()
	if loc == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s [%s]: %s", d.Severity, d.Code, loc, d.Message)
}

// Diagnostics is an ordered collection of findings. It implements
// error; an empty collection is not an error.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	const maxShown = 3
	if len(ds) == 0 {
		return ""
	}
	var b strings.Builder
	lim := len(ds)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ds[i].String())
	}
	if len(ds) > lim {
		_, _ = fmt.Fprintf(&b, "; ... (total %d)", len(ds))
	}
	return b.String()
}

// HasErrors returns true if any diagnostic has error severity
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

func segmentDiagnostic(
	seg *SegmentRecord,
	code string,
	format string,
	args ...any,
) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Kind:     KindSegmentSemantic,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: Location{Segment: seg.Index, Path: seg.path},
	}
}

func loopDiagnostic(
	loop *LoopRecord,
	code string,
	format string,
	args ...any,
) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Kind:     KindLoopSemantic,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: Location{Path: loop.path},
	}
}

// runSegmentValidators executes the validators attached to the
// segment's (merged) spec. A panicking validator is reported as a
// diagnostic rather than propagated.
func runSegmentValidators(seg *SegmentRecord) (out []Diagnostic) {
	if seg.Spec == nil {
		return nil
	}
	for _, v := range seg.Spec.Validators {
		out = append(out, runValidator(func() []Diagnostic {
			return v(seg)
		}, Location{Segment: seg.Index, Path: seg.path})...)
	}
	return out
}

// runValidator invokes fn, converting any panic into a single
// validator-fault diagnostic at the given location.
func runValidator(
	fn func() []Diagnostic,
	loc Location,
) (out []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Kind:     KindSegmentSemantic,
				Code:     CodeValidatorFault,
				Message:  fmt.Sprintf("validator fault: %v", r),
				Location: loc,
			})
		}
	}()
	return fn()
}

// validateNM1EntityType rejects person-name fields on organization
// (non-person) entities, and requires the identification code and
// qualifier as a pair.
func validateNM1EntityType(seg *SegmentRecord) []Diagnostic {
	var out []Diagnostic

	if seg.Get("entity_type_qualifier") == "2" {
		for _, name := range []string{
			"name_first",
			"name_middle",
			"name_prefix",
			"name_suffix",
		} {
			if seg.Get(name) != "" {
				out = append(out, segmentDiagnostic(
					seg,
					CodeFieldUsage,
					"Invalid field usage for Organization/Non-Person Entity",
				))
			}
		}
	}

	qualifier := seg.Get("identification_code_qualifier")
	code := seg.Get("identification_code")
	if (qualifier == "") != (code == "") {
		out = append(out, segmentDiagnostic(
			seg,
			CodeFieldUsage,
			"Identification code usage requires the code qualifier and code value",
		))
	}
	return out
}

// validateDatePeriodPair requires the date_time_period_format_qualifier
// and date_time_period fields as a pair (DMG usage)
func validateDatePeriodPair(seg *SegmentRecord) []Diagnostic {
	qualifier := seg.Get("date_time_period_format_qualifier")
	period := seg.Get("date_time_period")
	if (qualifier == "") != (period == "") {
		return []Diagnostic{segmentDiagnostic(
			seg,
			CodeFieldUsage,
			"%s segment requires both a date_time_period_format_qualifier and date time period if one or the other is present",
			seg.ID,
		)}
	}
	return nil
}

// validateDatePeriodFormat checks the date_time_period value against
// its D8/RD8 format qualifier. RD8 values are hyphen-separated date
// ranges; D8 values are single dates.
func validateDatePeriodFormat(seg *SegmentRecord) []Diagnostic {
	qualifier := seg.Get("date_time_period_format_qualifier")
	period := seg.Get("date_time_period")
	if qualifier == "" || period == "" {
		return nil
	}

	checkDate := func(value string) []Diagnostic {
		if _, err := parseDate(value); err != nil {
			return []Diagnostic{segmentDiagnostic(
				seg, CodeInvalidType, "Invalid date value %s", value,
			)}
		}
		return nil
	}

	switch qualifier {
	case "RD8":
		if !strings.Contains(period, "-") {
			return []Diagnostic{segmentDiagnostic(
				seg, CodeInvalidType, "Invalid date range %s", period,
			)}
		}
		var out []Diagnostic
		for _, d := range strings.SplitN(period, "-", 2) {
			out = append(out, checkDate(d)...)
		}
		return out
	case "D8":
		return checkDate(period)
	}
	return nil
}

// validateEQServiceOrProcedure requires either a service type code or
// a medical procedure id on EQ segments
func validateEQServiceOrProcedure(seg *SegmentRecord) []Diagnostic {
	if seg.Get("service_type_code") == "" &&
		seg.Get("medical_procedure_id") == "" {
		return []Diagnostic{segmentDiagnostic(
			seg,
			CodeRequired,
			"Service Type Code or Medical Procedure is required for EQ segment",
		)}
	}
	return nil
}

// validateDuplicateCodes flags repeated segments within a loop whose
// qualifier field carries the same code more than once
func validateDuplicateCodes(
	segmentKey string,
	codeField string,
) LoopValidator {
	return func(loop *LoopRecord) []Diagnostic {
		segments := loop.SegmentList(segmentKey)
		counts := make(map[string]int, len(segments))
		for _, seg := range segments {
			counts[seg.Get(codeField)]++
		}
		var dupes []string
		for code, ct := range counts {
			if ct > 1 {
				dupes = append(dupes, code)
			}
		}
		if len(dupes) == 0 {
			return nil
		}
		return []Diagnostic{loopDiagnostic(
			loop,
			CodeDuplicateCode,
			"Duplicate %s.%s codes %v",
			segmentKey,
			codeField,
			dupes,
		)}
	}
}

// validateDuplicateRefCodes flags duplicate REF qualifier codes within
// a loop
var validateDuplicateRefCodes = validateDuplicateCodes(
	"ref_segment", "reference_identification_qualifier",
)

// validateDuplicateAmtCodes flags duplicate AMT qualifier codes within
// a loop
var validateDuplicateAmtCodes = validateDuplicateCodes(
	"amt_segment", "amount_qualifier_code",
)

// validateDuplicateDateQualifiers flags duplicate DTP date qualifiers
// within a loop
var validateDuplicateDateQualifiers = validateDuplicateCodes(
	"dtp_segment", "date_time_qualifier",
)

// validateSegmentCount compares SE01 against the count of segments
// from ST through SE inclusive. It runs with the other
// transaction-scope validators, after all earlier diagnostics have
// been collected, so a count mismatch never masks the underlying
// findings.
func validateSegmentCount(m *TransactionModel) []Diagnostic {
	se := m.Footer().Segment("se_segment")
	if se == nil {
		return nil
	}
	expected, ok := se.Values["transaction_segment_count"].(int)
	if !ok {
		// SE01 failed shape validation; already reported
		return nil
	}
	if expected != m.SegmentCount() {
		return []Diagnostic{{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeSegmentCount,
			Message: fmt.Sprintf(
				"SE segment count %d != actual count %d",
				expected,
				m.SegmentCount(),
			),
			Location: Location{
				Segment: se.Index,
				Path:    se.path,
			},
		}}
	}
	return nil
}

// validateControlNumbers compares ST02 against SE02
func validateControlNumbers(m *TransactionModel) []Diagnostic {
	st := m.Header().Segment("st_segment")
	se := m.Footer().Segment("se_segment")
	if st == nil || se == nil {
		return nil
	}
	stControl := st.Get("transaction_set_control_number")
	seControl := se.Get("transaction_set_control_number")
	if stControl != seControl {
		return []Diagnostic{{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeControlNumber,
			Message: fmt.Sprintf(
				"ST control number %s does not match SE control number %s",
				stControl,
				seControl,
			),
			Location: Location{Segment: se.Index, Path: se.path},
		}}
	}
	return nil
}

// validateHierarchy checks the HL chain for the transaction: ids must
// be unique, and every non-root parent id must refer to a previously
// emitted HL id.
func validateHierarchy(m *TransactionModel) []Diagnostic {
	var out []Diagnostic
	seen := make(map[string]*SegmentRecord, len(m.hlSegments))

	for _, hl := range m.hlSegments {
		id := hl.Get("hierarchical_id_number")
		parentId := hl.Get("hierarchical_parent_id_number")

		if _, exists := seen[id]; exists {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Kind:     KindTransactionSemantic,
				Code:     CodeHierarchy,
				Message: fmt.Sprintf(
					"HL segment with id '%s' already exists", id,
				),
				Location: Location{Segment: hl.Index, Path: hl.path},
			})
			continue
		}
		seen[id] = hl

		if parentId == "" {
			continue
		}
		parent, ok := seen[parentId]
		if !ok {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Kind:     KindTransactionSemantic,
				Code:     CodeHierarchy,
				Message: fmt.Sprintf(
					"HL parent id '%s' does not refer to a previously seen HL",
					parentId,
				),
				Location: Location{Segment: hl.Index, Path: hl.path},
			})
			continue
		}
		if parent.Get("hierarchical_child_code") == "0" {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Kind:     KindTransactionSemantic,
				Code:     CodeHierarchy,
				Message: fmt.Sprintf(
					"HL parent '%s' does not indicate child levels",
					parentId,
				),
				Location: Location{Segment: hl.Index, Path: hl.path},
			})
		}
	}
	return out
}
