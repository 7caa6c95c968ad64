package x12

import (
	"fmt"
	"strconv"
	"strings"
)

// bindModel applies the loop-local-or-base schema to every segment in
// the model: raw strings are coerced into their declared semantic
// types, and length, pattern, and code-table constraints are checked.
// Each failure yields a shape diagnostic bound to the field's
// location. Binding continues after failures.
func bindModel(m *TransactionModel) {
	for _, seg := range m.Segments() {
		bindSegment(m, seg)
	}
}

func bindSegment(m *TransactionModel, seg *SegmentRecord) {
	if seg.Spec == nil {
		return
	}
	seg.Values = make(map[string]any, len(seg.Spec.Fields))

	for i, f := range seg.Spec.Fields {
		position := i + 1
		var raw string
		if position < len(seg.Raw) {
			raw = seg.Raw[position]
		}

		if f.NotUsed() {
			if raw != "" {
				m.shapeError(
					seg, position,
					CodeFieldUsage,
					"field %s is not used, but has a value",
					f.Name,
				)
			}
			continue
		}
		if raw == "" {
			if f.Required() {
				m.shapeError(
					seg, position,
					CodeRequired,
					"missing required field %s",
					f.Name,
				)
			}
			continue
		}

		parts := []string{raw}
		if f.Repeating {
			parts = strings.Split(raw, string(m.Delimiters.Repetition))
		}
		for _, part := range parts {
			checkFieldShape(m, seg, f, position, part)
		}

		if f.Repeating {
			seg.Values[f.Name] = parts
			continue
		}
		if v, ok := coerceField(f, raw); ok {
			seg.Values[f.Name] = v
		} else {
			m.shapeError(
				seg, position,
				CodeInvalidType,
				"field %s value %q is not a valid %s",
				f.Name,
				raw,
				f.Type,
			)
		}
	}

	if extra := len(seg.Raw) - 1 - len(seg.Spec.Fields); extra > 0 {
		m.shapeError(
			seg, len(seg.Spec.Fields)+1,
			CodeUnknownField,
			"spec defines %d fields, segment has %d",
			len(seg.Spec.Fields),
			len(seg.Raw)-1,
		)
	}
}

// checkFieldShape verifies length bounds, pattern, and code-table
// membership for a single value
func checkFieldShape(
	m *TransactionModel,
	seg *SegmentRecord,
	f *FieldSpec,
	position int,
	value string,
) {
	if f.MinLength > 0 && len(value) < f.MinLength {
		m.shapeError(
			seg, position,
			CodeTooShort,
			"field %s value is too short (min length %d)",
			f.Name,
			f.MinLength,
		)
	}
	if f.MaxLength > 0 && len(value) > f.MaxLength {
		m.shapeError(
			seg, position,
			CodeTooLong,
			"field %s value is too long (max length %d)",
			f.Name,
			f.MaxLength,
		)
	}
	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		m.shapeError(
			seg, position,
			CodePattern,
			"field %s value %q does not match %s",
			f.Name,
			value,
			f.Pattern.String(),
		)
	}
	if len(f.ValidCodes) > 0 && !sliceContains(f.ValidCodes, value) {
		m.shapeError(
			seg, position,
			CodeInvalidCode,
			"field %s has invalid value (got: %q) (valid values: %v)",
			f.Name,
			value,
			f.ValidCodes,
		)
	}
}

// coerceField converts the raw string into the field's declared
// semantic type. Date and time values convert to time.Time; numeric
// types to int and float64; everything else stays a string.
func coerceField(f *FieldSpec, raw string) (any, bool) {
	switch f.Type {
	case Numeric:
		v, err := strconv.Atoi(raw)
		return v, err == nil
	case Decimal:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err == nil
	case Date:
		v, err := parseDate(raw)
		return v, err == nil
	case Time:
		v, err := parseTime(raw)
		return v, err == nil
	default:
		return raw, true
	}
}

// shapeError appends a shape diagnostic for the given field position
func (m *TransactionModel) shapeError(
	seg *SegmentRecord,
	position int,
	code string,
	format string,
	args ...any,
) {
	loc := m.location
	loc.Segment = seg.Index
	loc.Field = position
	loc.Path = seg.path
	m.Diagnostics = append(m.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Kind:     KindShape,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// validateModel runs segment-scope, loop-scope, and transaction-scope
// validators, in that order. The segment count check runs after every
// other validator so a count mismatch never masks the diagnostics that
// produced it.
func validateModel(m *TransactionModel) {
	for _, seg := range m.Segments() {
		m.appendDiagnostics(runSegmentValidators(seg))
	}

	validateLoopRecord(m, m.root)

	for _, v := range m.Spec.Validators {
		m.appendDiagnostics(runValidator(func() []Diagnostic {
			return v(m)
		}, m.location))
	}
	m.appendDiagnostics(runValidator(func() []Diagnostic {
		return validateControlNumbers(m)
	}, m.location))
	m.appendDiagnostics(runValidator(func() []Diagnostic {
		return validateHierarchy(m)
	}, m.location))
	m.appendDiagnostics(runValidator(func() []Diagnostic {
		return validateSegmentCount(m)
	}, m.location))
}

// validateLoopRecord checks slot and child-loop presence and repeat
// bounds against the loop's schema, runs the loop's validators, and
// recurses into child loops in declared order.
func validateLoopRecord(m *TransactionModel, rec *LoopRecord) {
	spec := rec.spec
	if spec == nil {
		return
	}

	for _, slot := range spec.Segments {
		count := len(rec.SegmentList(slot.Key))
		if count == 0 {
			if slot.Usage == Required {
				m.loopError(rec, CodeMissingSegment,
					"missing required segment %s in loop %s",
					slot.Spec.ID,
					loopDisplayName(rec),
				)
			}
			continue
		}
		if slot.RepeatMin > 0 && count < slot.RepeatMin {
			m.loopError(rec, CodeRepeatBounds,
				"segment %s repeats %d times, minimum is %d",
				slot.Spec.ID,
				count,
				slot.RepeatMin,
			)
		}
		if slot.RepeatMax > 0 && count > slot.RepeatMax {
			m.loopError(rec, CodeRepeatBounds,
				"segment %s repeats %d times, maximum is %d",
				slot.Spec.ID,
				count,
				slot.RepeatMax,
			)
		}
	}

	for _, child := range spec.Loops {
		records := rec.LoopList(child.Name)
		if len(records) == 0 {
			if child.Usage == Required {
				m.loopError(rec, CodeMissingLoop,
					"missing required loop %s in loop %s",
					child.Name,
					loopDisplayName(rec),
				)
			}
			continue
		}
		if child.RepeatMin > 0 && len(records) < child.RepeatMin {
			m.loopError(rec, CodeRepeatBounds,
				"loop %s repeats %d times, minimum is %d",
				child.Name,
				len(records),
				child.RepeatMin,
			)
		}
		if child.RepeatMax > 0 && len(records) > child.RepeatMax {
			m.loopError(rec, CodeRepeatBounds,
				"loop %s repeats %d times, maximum is %d",
				child.Name,
				len(records),
				child.RepeatMax,
			)
		}
	}

	for _, v := range spec.Validators {
		m.appendDiagnostics(runValidator(func() []Diagnostic {
			return v(rec)
		}, Location{Path: rec.path}))
	}

	for _, child := range spec.Loops {
		for _, childRec := range rec.LoopList(child.Name) {
			validateLoopRecord(m, childRec)
		}
	}
}

// loopError appends a loop-scope semantic diagnostic
func (m *TransactionModel) loopError(
	rec *LoopRecord,
	code string,
	format string,
	args ...any,
) {
	loc := m.location
	loc.Path = rec.path
	m.Diagnostics = append(m.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Kind:     KindLoopSemantic,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// appendDiagnostics merges the given diagnostics onto the model,
// filling in envelope location fields that scoped validators cannot
// know
func (m *TransactionModel) appendDiagnostics(ds []Diagnostic) {
	for _, d := range ds {
		if d.Location.Interchange == 0 {
			d.Location.Interchange = m.location.Interchange
		}
		if d.Location.Group == 0 {
			d.Location.Group = m.location.Group
		}
		if d.Location.Transaction == 0 {
			d.Location.Transaction = m.location.Transaction
		}
		m.Diagnostics = append(m.Diagnostics, d)
	}
}

// sliceContains returns true if the given value is present in the
// given slice
func sliceContains[V comparable](row []V, val V) bool {
	for _, v := range row {
		if v == val {
			return true
		}
	}
	return false
}
