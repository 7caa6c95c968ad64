package x12

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// SegmentRecord is a tokenized segment attached to a loop record. Raw
// holds the wire field values (index 0 is the segment id); Values
// holds the typed field values produced by the binder, keyed by field
// name.
type SegmentRecord struct {
	ID string
	// Spec is the loop-local-or-base schema in effect for this
	// occurrence
	Spec *SegmentSpec
	Raw  []string
	// Values is populated during binding
	Values map[string]any
	// Index is the one-indexed position of the segment within its
	// transaction (ST = 1)
	Index int

	path string
}

// newSegmentRecord creates a SegmentRecord from a token, resolving the
// loop-local-or-base schema later during attachment.
func newSegmentRecord(token *SegmentToken) *SegmentRecord {
	return &SegmentRecord{
		ID:  token.ID,
		Raw: token.Fields,
	}
}

// Get returns the raw value of the named field, or an empty string
// when the field is absent. An empty string denotes "absent".
func (s *SegmentRecord) Get(name string) string {
	if s.Spec == nil {
		return ""
	}
	i := s.Spec.fieldIndex(name)
	if i < 0 || i+1 >= len(s.Raw) {
		return ""
	}
	return s.Raw[i+1]
}

// Value returns the typed value of the named field, or nil when the
// field is absent or unbound
func (s *SegmentRecord) Value(name string) any {
	if s.Values == nil {
		return nil
	}
	return s.Values[name]
}

// Path returns the loop path the segment was attached under
func (s *SegmentRecord) Path() string {
	return s.path
}

// payload converts the segment into a map keyed by field name. Typed
// values are preferred; unbound fields fall back to their raw values.
// Wire fields beyond the spec (already diagnosed during binding) are
// keyed by position.
func (s *SegmentRecord) payload() map[string]any {
	payload := map[string]any{}
	if s.Spec == nil {
		for i, v := range s.Raw {
			payload[fmt.Sprintf("%s%02d", s.ID, i)] = v
		}
		return payload
	}
	for i, f := range s.Spec.Fields {
		if f.NotUsed() {
			continue
		}
		if v, ok := s.Values[f.Name]; ok {
			payload[f.Name] = v
			continue
		}
		if i+1 < len(s.Raw) {
			payload[f.Name] = s.Raw[i+1]
		} else {
			payload[f.Name] = ""
		}
	}
	for i := len(s.Spec.Fields) + 1; i < len(s.Raw); i++ {
		payload[fmt.Sprintf("%s%02d", s.ID, i)] = s.Raw[i]
	}
	return payload
}

// LoopRecord is a single occurrence of a loop: a mapping of segment
// record keys (`nm1_segment`) and child loop names (`loop_2100a`) to
// their values. Segment keys hold *SegmentRecord or []*SegmentRecord;
// loop keys hold *LoopRecord or []*LoopRecord.
type LoopRecord struct {
	Name   string
	Fields map[string]any

	spec *LoopSpec
	path string
	// maxSlotSeen tracks the declared index of the latest attached
	// segment slot, for out-of-order detection
	maxSlotSeen int
}

func newLoopRecord(spec *LoopSpec) *LoopRecord {
	rec := &LoopRecord{
		Name:        spec.Name,
		Fields:      map[string]any{},
		spec:        spec,
		path:        spec.path,
		maxSlotSeen: -1,
	}
	// list-typed slots are initialized so repeating segments append
	// without a presence check, mirroring the record shape on render
	for _, slot := range spec.Segments {
		if slot.Repeats() {
			rec.Fields[slot.Key] = []*SegmentRecord{}
		}
	}
	return rec
}

// Spec returns the LoopSpec for this record
func (l *LoopRecord) Spec() *LoopSpec {
	return l.spec
}

// Path returns the fully-qualified loop path
func (l *LoopRecord) Path() string {
	return l.path
}

// Segment returns the single segment stored under the given key, or
// nil. For repeating slots it returns the first occurrence.
func (l *LoopRecord) Segment(key string) *SegmentRecord {
	switch v := l.Fields[key].(type) {
	case *SegmentRecord:
		return v
	case []*SegmentRecord:
		if len(v) > 0 {
			return v[0]
		}
	}
	return nil
}

// SegmentList returns all segments stored under the given key
func (l *LoopRecord) SegmentList(key string) []*SegmentRecord {
	switch v := l.Fields[key].(type) {
	case *SegmentRecord:
		return []*SegmentRecord{v}
	case []*SegmentRecord:
		return v
	}
	return nil
}

// Loop returns the single child loop record with the given name, or
// nil. For repeating loops it returns the last occurrence (the one in
// progress during parsing).
func (l *LoopRecord) Loop(name string) *LoopRecord {
	switch v := l.Fields[name].(type) {
	case *LoopRecord:
		return v
	case []*LoopRecord:
		if len(v) > 0 {
			return v[len(v)-1]
		}
	}
	return nil
}

// LoopList returns all child loop records with the given name
func (l *LoopRecord) LoopList(name string) []*LoopRecord {
	switch v := l.Fields[name].(type) {
	case *LoopRecord:
		return []*LoopRecord{v}
	case []*LoopRecord:
		return v
	}
	return nil
}

// attachSegment stores the segment under the given slot. Repeating
// slots append; single slots keep the first occurrence.
func (l *LoopRecord) attachSegment(slot *SegmentSlot, seg *SegmentRecord) bool {
	if slot.Repeats() {
		existing, _ := l.Fields[slot.Key].([]*SegmentRecord)
		l.Fields[slot.Key] = append(existing, seg)
		return true
	}
	if _, occupied := l.Fields[slot.Key].(*SegmentRecord); occupied {
		return false
	}
	l.Fields[slot.Key] = seg
	return true
}

// attachLoop stores (or appends) a child loop record
func (l *LoopRecord) attachLoop(spec *LoopSpec, rec *LoopRecord) {
	if spec.Repeats() {
		existing, _ := l.Fields[spec.Name].([]*LoopRecord)
		l.Fields[spec.Name] = append(existing, rec)
		return
	}
	l.Fields[spec.Name] = rec
}

// segments returns every segment record in the loop subtree, in
// attachment order within each slot, following the declared slot and
// child loop order.
func (l *LoopRecord) segments() []*SegmentRecord {
	var out []*SegmentRecord
	if l.spec == nil {
		return out
	}
	for _, slot := range l.spec.Segments {
		out = append(out, l.SegmentList(slot.Key)...)
	}
	for _, child := range l.spec.Loops {
		for _, rec := range l.LoopList(child.Name) {
			out = append(out, rec.segments()...)
		}
	}
	return out
}

// payload converts the loop record subtree into nested maps, keyed by
// segment record keys and loop names
func (l *LoopRecord) payload() map[string]any {
	payload := map[string]any{}
	if l.spec == nil {
		return payload
	}
	for _, slot := range l.spec.Segments {
		if slot.Repeats() {
			items := []map[string]any{}
			for _, seg := range l.SegmentList(slot.Key) {
				items = append(items, seg.payload())
			}
			payload[slot.Key] = items
			continue
		}
		if seg := l.Segment(slot.Key); seg != nil {
			payload[slot.Key] = seg.payload()
		}
	}
	for _, child := range l.spec.Loops {
		if child.Repeats() {
			items := []map[string]any{}
			for _, rec := range l.LoopList(child.Name) {
				items = append(items, rec.payload())
			}
			payload[child.Name] = items
			continue
		}
		if rec := l.Loop(child.Name); rec != nil {
			payload[child.Name] = rec.payload()
		}
	}
	return payload
}

// TransactionModel is a bound, validated transaction set. The record
// tree is rooted at Root, which holds the header pseudo-loop, the
// transaction's top-level loops, and the footer pseudo-loop.
type TransactionModel struct {
	// TransactionCode is ST01
	TransactionCode string `json:"transactionSetCode"`
	// ControlNumber is ST02
	ControlNumber string `json:"controlNumber"`
	// Version is the implementation convention (ST03)
	Version string `json:"version"`

	Spec       *TransactionSpec `json:"-"`
	Delimiters Delimiters       `json:"-"`
	// Diagnostics accumulate in observation order: tokenizer, binder,
	// then segment/loop/transaction validators
	Diagnostics Diagnostics `json:"diagnostics,omitempty"`

	root         *LoopRecord
	segmentCount int
	hlSegments   []*SegmentRecord
	location     Location
	envelope     envelope
}

// Valid returns true when no diagnostic has error severity
func (m *TransactionModel) Valid() bool {
	return !m.Diagnostics.HasErrors()
}

// Root returns the transaction's root record
func (m *TransactionModel) Root() *LoopRecord {
	return m.root
}

// Header returns the header pseudo-loop record
func (m *TransactionModel) Header() *LoopRecord {
	if rec := m.root.Loop(headerLoopName); rec != nil {
		return rec
	}
	return &LoopRecord{Name: headerLoopName, Fields: map[string]any{}}
}

// Footer returns the footer pseudo-loop record
func (m *TransactionModel) Footer() *LoopRecord {
	if rec := m.root.Loop(footerLoopName); rec != nil {
		return rec
	}
	return &LoopRecord{Name: footerLoopName, Fields: map[string]any{}}
}

// SegmentCount is the number of segments from ST through SE inclusive
func (m *TransactionModel) SegmentCount() int {
	return m.segmentCount
}

// Segments returns every segment record in the transaction in
// declared order
func (m *TransactionModel) Segments() []*SegmentRecord {
	return m.root.segments()
}

// Payload converts the model's record tree into nested maps keyed by
// loop names and segment record keys
func (m *TransactionModel) Payload() map[string]any {
	return m.root.payload()
}

// JSON marshals the model payload. When excludeEmpty is true, nil and
// empty-string fields and empty lists and maps are removed from the
// output; numeric zero values and zero times are kept.
func (m *TransactionModel) JSON(excludeEmpty bool) ([]byte, error) {
	payload := m.Payload()
	if excludeEmpty {
		removeEmptyOrZero(payload)
	}
	// a bare json.Marshal would escape separators like > and &
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// removeEmptyOrZero strips empty strings, nils, and empty containers
// from the payload, recursively
func removeEmptyOrZero(m map[string]any) {
	for k, v := range m {
		switch v := v.(type) {
		case nil:
			delete(m, k)
		case string:
			if v == "" {
				delete(m, k)
			}
		case []string:
			if len(v) == 0 {
				delete(m, k)
			}
		case map[string]any:
			removeEmptyOrZero(v)
			if len(v) == 0 {
				delete(m, k)
			}
		case []map[string]any:
			if len(v) == 0 {
				delete(m, k)
				continue
			}
			for i := range v {
				removeEmptyOrZero(v[i])
			}
		}
	}
}

// parseDate parses a string into a time.Time value, using the
// corresponding X12 date formats based on the length of the string
// (YYMMDD or YYYYMMDD).
func parseDate(value string) (v time.Time, err error) {
	switch len(value) {
	case 6:
		v, err = time.Parse("060102", value)
	case 8:
		v, err = time.Parse("20060102", value)
	case 0:
	default:
		err = fmt.Errorf("date value '%s' should be length 0, 6 or 8", value)
	}
	return v, err
}

// parseTime parses a string into a time.Time value, using the
// corresponding X12 time formats based on the length of the string
// (HHMM, HHMMSS, or HHMMSSDD).
func parseTime(value string) (v time.Time, err error) {
	switch len(value) {
	case 4:
		v, err = time.Parse("1504", value)
	case 6:
		v, err = time.Parse("150405", value)
	case 7, 8:
		newVal := []rune(value)
		value = fmt.Sprintf("%s.%s", string(newVal[:6]), string(newVal[6:]))
		v, err = time.Parse("150405.99", value)
	case 0:
	default:
		err = fmt.Errorf(
			"time value '%s' should be length 0, 4, 6, 7 or 8",
			value,
		)
	}
	return v, err
}
