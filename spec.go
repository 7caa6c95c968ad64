package x12

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// DataType indicates the ASC X12 data type of an element
type DataType uint

const (
	UnknownDataType DataType = iota
	String
	Numeric
	Identifier
	Decimal
	Date
	Time
	Binary
)

func (d DataType) String() string {
	names := map[DataType]string{
		UnknownDataType: "",
		String:          "AN",
		Numeric:         "N",
		Identifier:      "ID",
		Decimal:         "R",
		Date:            "DT",
		Time:            "TM",
		Binary:          "B",
	}
	return names[d]
}

func (d DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Usage indicates whether a field, segment slot or loop is required,
// situational, or not used
type Usage int

const (
	UnknownUsage Usage = iota
	Required
	Situational
	NotUsed
)

func (u Usage) String() string {
	usageNames := map[Usage]string{
		Required:    "REQUIRED",
		Situational: "SITUATIONAL",
		NotUsed:     "NOT USED",
	}
	return usageNames[u]
}

func (u Usage) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// FieldSpec declares the shape of a single element position within a
// segment: its record name, semantic type, length bounds, pattern and
// code table.
type FieldSpec struct {
	// Name is the record key for the field
	// (ex: `entity_type_qualifier`)
	Name  string
	Type  DataType
	Usage Usage
	// MinLength/MaxLength bound the raw value length when a value
	// is present
	MinLength int
	MaxLength int
	// Pattern, when set, must match any non-empty raw value
	Pattern *regexp.Regexp
	// ValidCodes is the enumerated code table for the field, if any
	ValidCodes []string
	// Repeating marks a field whose value is a repetition-separated
	// list. Component-separated (composite) values are preserved
	// verbatim and are not declared here.
	Repeating bool
}

func (f *FieldSpec) Required() bool {
	return f.Usage == Required
}

func (f *FieldSpec) NotUsed() bool {
	return f.Usage == NotUsed
}

// clone returns a copy of the field spec, sharing the pattern and code
// table (both immutable once registered)
func (f *FieldSpec) clone() *FieldSpec {
	c := *f
	return &c
}

// SegmentValidator is a pure segment-scope validation function. It
// receives the complete segment record and returns diagnostics; it
// must not mutate the record.
type SegmentValidator func(seg *SegmentRecord) []Diagnostic

// LoopValidator is a pure loop-scope validation function
type LoopValidator func(loop *LoopRecord) []Diagnostic

// TransactionValidator is a pure transaction-scope validation function
type TransactionValidator func(m *TransactionModel) []Diagnostic

// SegmentSpec declares the ordered field schema for a segment id,
// along with any segment-scope validators.
type SegmentSpec struct {
	ID          string
	Description string
	Fields      []*FieldSpec
	Validators  []SegmentValidator
}

// field returns the FieldSpec with the given name, or nil
func (s *SegmentSpec) field(name string) *FieldSpec {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// fieldIndex returns the zero-based position of the named field within
// the segment's structure, or -1. The wire position is fieldIndex+1
// (position zero holds the segment id).
func (s *SegmentSpec) fieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FieldOverride narrows a base FieldSpec for use within a specific
// loop. Zero values leave the base setting unchanged.
type FieldOverride struct {
	Usage      Usage
	MinLength  int
	MaxLength  int
	Pattern    *regexp.Regexp
	ValidCodes []string
	// Literal constrains the field to a single exact value
	Literal string
}

// SegmentOverride layers loop-local constraints onto a base segment
// spec: narrower field constraints, required-ness flips, loop-local
// code tables, and additional validators.
type SegmentOverride struct {
	Fields     map[string]FieldOverride
	Validators []SegmentValidator
}

// Override merges the given loop-local override onto the base spec,
// producing a new SegmentSpec. The base spec is not modified. Override
// precedence follows the binding rule: loop-local constraint wins,
// base schema applies otherwise.
func Override(base *SegmentSpec, o SegmentOverride) *SegmentSpec {
	merged := &SegmentSpec{
		ID:          base.ID,
		Description: base.Description,
		Fields:      make([]*FieldSpec, len(base.Fields)),
	}
	merged.Validators = append(merged.Validators, base.Validators...)
	merged.Validators = append(merged.Validators, o.Validators...)

	for i, f := range base.Fields {
		fo, ok := o.Fields[f.Name]
		if !ok {
			merged.Fields[i] = f
			continue
		}
		nf := f.clone()
		if fo.Usage != UnknownUsage {
			nf.Usage = fo.Usage
		}
		if fo.MinLength != 0 {
			nf.MinLength = fo.MinLength
		}
		if fo.MaxLength != 0 {
			nf.MaxLength = fo.MaxLength
		}
		if fo.Pattern != nil {
			nf.Pattern = fo.Pattern
		}
		if len(fo.ValidCodes) > 0 {
			nf.ValidCodes = fo.ValidCodes
		}
		if fo.Literal != "" {
			nf.ValidCodes = []string{fo.Literal}
			if nf.Usage != Required {
				nf.Usage = Required
			}
		}
		merged.Fields[i] = nf
	}
	return merged
}

// SegmentSlot binds a segment spec into a loop: the record key it is
// stored under, its usage, and how many times it may repeat.
type SegmentSlot struct {
	// Key is the record key, conventionally the lowercased segment id
	// plus "_segment"
	Key   string
	Spec  *SegmentSpec
	Usage Usage
	// RepeatMax of 0 means unbounded when RepeatMin is at least 1;
	// with both 0 the slot holds a single segment
	RepeatMin int
	RepeatMax int
}

// Repeats returns true when the slot holds a list of segments rather
// than a single record
func (s *SegmentSlot) Repeats() bool {
	return s.RepeatMax > 1 || (s.RepeatMin >= 1 && s.RepeatMax == 0) ||
		s.RepeatMin > 1
}

// Slot is a convenience constructor for a non-repeating segment slot
func Slot(spec *SegmentSpec, usage Usage) *SegmentSlot {
	return &SegmentSlot{
		Key:   segmentKey(spec.ID),
		Spec:  spec,
		Usage: usage,
	}
}

// RepeatSlot is a convenience constructor for a repeating segment
// slot. A max of 0 indicates unbounded repetition when min is at least
// 1; with min and max both 0 the slot does not repeat, like one built
// by Slot.
func RepeatSlot(spec *SegmentSpec, usage Usage, min int, max int) *SegmentSlot {
	return &SegmentSlot{
		Key:       segmentKey(spec.ID),
		Spec:      spec,
		Usage:     usage,
		RepeatMin: min,
		RepeatMax: max,
	}
}

// segmentKey derives the conventional record key for a segment id
// (`NM1` -> `nm1_segment`)
func segmentKey(segmentId string) string {
	return strings.ToLower(segmentId) + segmentKeySuffix
}

// LoopSpec declares a named loop: its ordered segment slots, its
// ordered child loops, repetition bounds, and loop-scope validators.
// Loop boundaries are not delimited on the wire; they are inferred by
// the dispatch table.
type LoopSpec struct {
	Name        string
	Description string
	Usage       Usage
	RepeatMin   int
	RepeatMax   int
	Segments    []*SegmentSlot
	Loops       []*LoopSpec
	Validators  []LoopValidator

	parent *LoopSpec
	path   string
}

// Repeats returns true when the loop may occur more than once within
// its parent
func (l *LoopSpec) Repeats() bool {
	return l.RepeatMax > 1 || (l.RepeatMin >= 1 && l.RepeatMax == 0) ||
		l.RepeatMin > 1
}

// Path returns the fully-qualified loop path
// (ex: `loop_2000a/loop_2000b`)
func (l *LoopSpec) Path() string {
	return l.path
}

// child returns the child loop with the given name, or nil
func (l *LoopSpec) child(name string) *LoopSpec {
	for _, c := range l.Loops {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// slot returns the segment slot with the given record key, or nil
func (l *LoopSpec) slot(key string) *SegmentSlot {
	for _, s := range l.Segments {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// slotIndex returns the declared position of the slot with the given
// key, or -1
func (l *LoopSpec) slotIndex(key string) int {
	for i, s := range l.Segments {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// setPaths assigns fully-qualified paths to the loop and its children,
// recording each in pathMap. Duplicate paths are a configuration error.
func (l *LoopSpec) setPaths(
	parentPath string,
	pathMap map[string]*LoopSpec,
) error {
	if parentPath == "" {
		l.path = l.Name
	} else {
		l.path = parentPath + loopPathSeparator + l.Name
	}
	if _, dupe := pathMap[l.path]; dupe {
		return fmt.Errorf("duplicate loop path %s", l.path)
	}
	pathMap[l.path] = l
	for _, c := range l.Loops {
		c.parent = l
		if err := c.setPaths(l.path, pathMap); err != nil {
			return err
		}
	}
	return nil
}

// TransactionSpec defines a supported (transaction code, implementation
// version) pair: its loop tree, dispatch rules, and transaction-scope
// validators.
type TransactionSpec struct {
	// Key is a unique description of the transaction set
	// (ex: `270-005010X279A1`)
	Key string
	// TransactionCode is the ST01 value (ex: `270`)
	TransactionCode string
	// Version is the implementation convention conveyed in ST03
	// (ex: `005010X279A1`)
	Version string
	// Header holds the ST/BHT (or equivalent) segments preceding the
	// first loop trigger
	Header *LoopSpec
	// Loops are the top-level loops of the transaction body
	Loops []*LoopSpec
	// Footer holds the SE segment
	Footer *LoopSpec
	// Rules is the declarative dispatch table, evaluated top-down
	Rules      []*MatchRule
	Validators []TransactionValidator

	ruleIndex map[string][]*MatchRule
	pathMap   map[string]*LoopSpec
	// root is a synthetic loop wrapping header, body loops and footer
	// in declared order
	root *LoopSpec
}

// Validate checks the transaction spec for structural and dispatch
// configuration errors, and finalizes internal lookup tables. It must
// be called (via RegisterTransaction) before the spec is used.
func (t *TransactionSpec) Validate() error {
	var errs []error
	if t.TransactionCode == "" {
		errs = append(errs, errors.New("transaction code is required"))
	}
	if t.Version == "" {
		errs = append(errs, errors.New("implementation version is required"))
	}
	if t.Header == nil || t.Header.Name != headerLoopName {
		errs = append(
			errs,
			fmt.Errorf("header loop must be named %q", headerLoopName),
		)
	}
	if t.Footer == nil || t.Footer.Name != footerLoopName {
		errs = append(
			errs,
			fmt.Errorf("footer loop must be named %q", footerLoopName),
		)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	t.pathMap = make(map[string]*LoopSpec)
	errs = append(errs, t.Header.setPaths("", t.pathMap))
	for _, l := range t.Loops {
		errs = append(errs, l.setPaths("", t.pathMap))
	}
	errs = append(errs, t.Footer.setPaths("", t.pathMap))

	rootLoops := make([]*LoopSpec, 0, len(t.Loops)+2)
	rootLoops = append(rootLoops, t.Header)
	rootLoops = append(rootLoops, t.Loops...)
	rootLoops = append(rootLoops, t.Footer)
	t.root = &LoopSpec{Name: "", Usage: Required, Loops: rootLoops}

	t.ruleIndex = make(map[string][]*MatchRule)
	for _, rule := range t.Rules {
		if _, ok := t.pathMap[rule.Target]; !ok {
			errs = append(
				errs,
				fmt.Errorf(
					"rule for %s targets unknown loop path %q",
					rule.SegmentID,
					rule.Target,
				),
			)
			continue
		}
		for _, existing := range t.ruleIndex[rule.SegmentID] {
			if existing.sameConditions(rule) {
				errs = append(
					errs,
					fmt.Errorf(
						"duplicate dispatch rule for %s with conditions %v",
						rule.SegmentID,
						rule.Conditions,
					),
				)
			}
		}
		t.ruleIndex[rule.SegmentID] = append(
			t.ruleIndex[rule.SegmentID],
			rule,
		)
	}
	return errors.Join(errs...)
}

// loopAt returns the LoopSpec at the given fully-qualified path, or nil
func (t *TransactionSpec) loopAt(path string) *LoopSpec {
	return t.pathMap[path]
}
