package x12

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidEnvelope indicates a structural fault in the
	// ISA/GS/ST nesting that prevents further parsing
	ErrInvalidEnvelope = errors.New("invalid envelope structure")
	// ErrUnsupportedTransaction indicates no transaction spec is
	// registered for the (code, version) pair conveyed in ST/GS
	ErrUnsupportedTransaction = errors.New("unsupported transaction set")
)

// frame is a single entry in the parser's loop stack
type frame struct {
	spec *LoopSpec
	rec  *LoopRecord
}

// parserContext is the ephemeral state held while parsing a single
// transaction: the active loop stack, cached subscriber and patient
// records for hierarchical rules, and the most recent HL segment.
type parserContext struct {
	frames     []frame
	subscriber *LoopRecord
	patient    *LoopRecord
	hlSegment  *SegmentRecord
}

// active returns the top frame
func (c *parserContext) active() frame {
	return c.frames[len(c.frames)-1]
}

// envelope captures the raw ISA/GS/GE/IEA segments surrounding a
// transaction, for reuse on render
type envelope struct {
	isa []string
	gs  []string
	ge  []string
	iea []string
}

// parser folds the token sequence into transaction models. A parser
// handles a single input; parse distinct inputs with distinct parsers
// (registries are immutable and freely shareable).
type parser struct {
	tokenizer  *Tokenizer
	delimiters Delimiters

	isa         []string
	groupOpen   bool
	gs          []string
	groupNumber int

	models      []*TransactionModel
	groupModels []*TransactionModel

	// active transaction state
	spec         *TransactionSpec
	model        *TransactionModel
	ctx          *parserContext
	segmentCount int
}

func newParser(r io.Reader) (*parser, error) {
	tokenizer, err := NewTokenizer(r)
	if err != nil {
		return nil, err
	}
	return &parser{
		tokenizer:  tokenizer,
		delimiters: tokenizer.Delimiters(),
	}, nil
}

// run consumes the token sequence, returning one model per ST..SE
// pair. Fatal delimiter, token, or envelope errors abort the parse;
// shape and semantic findings accumulate on the returned models.
func (p *parser) run() ([]*TransactionModel, error) {
	var sawIEA bool
	for {
		token, err := p.tokenizer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p.models, err
		}
		if err := p.handleToken(token); err != nil {
			return p.models, err
		}
		if token.ID == ieaSegmentId {
			sawIEA = true
		}
	}
	if p.model != nil {
		return p.models, fmt.Errorf(
			"%w: transaction %s is missing its SE trailer",
			ErrInvalidEnvelope,
			p.model.ControlNumber,
		)
	}
	if p.groupOpen {
		return p.models, fmt.Errorf(
			"%w: functional group is missing its GE trailer",
			ErrInvalidEnvelope,
		)
	}
	if !sawIEA {
		return p.models, fmt.Errorf(
			"%w: interchange is missing its IEA trailer",
			ErrInvalidEnvelope,
		)
	}
	return p.models, nil
}

func (p *parser) handleToken(token *SegmentToken) error {
	switch token.ID {
	case isaSegmentId:
		p.isa = token.Fields
		return nil
	case gsSegmentId:
		if p.groupOpen {
			return fmt.Errorf(
				"%w: found GS before GE", ErrInvalidEnvelope,
			)
		}
		p.groupOpen = true
		p.groupNumber++
		p.gs = token.Fields
		p.groupModels = nil
		return nil
	case geSegmentId:
		return p.closeGroup(token)
	case ieaSegmentId:
		return p.closeInterchange(token)
	case stSegmentId:
		return p.startTransaction(token)
	}

	if p.model == nil {
		return fmt.Errorf(
			"%w: segment %s outside of a transaction set",
			ErrInvalidEnvelope,
			token.ID,
		)
	}
	p.segmentCount++
	if token.ID == seSegmentId {
		return p.finishTransaction(token)
	}
	return p.consumeSegment(token)
}

func (p *parser) startTransaction(token *SegmentToken) error {
	if !p.groupOpen {
		return fmt.Errorf(
			"%w: found ST outside of a functional group",
			ErrInvalidEnvelope,
		)
	}
	if p.model != nil {
		// duplicate ST without an intervening SE is unrecoverable:
		// the boundary of the open transaction is unknowable
		return fmt.Errorf(
			"%w: found ST before SE for transaction %s",
			ErrInvalidEnvelope,
			p.model.ControlNumber,
		)
	}

	code := tokenField(token, stIndexTransactionSetCode)
	controlNumber := tokenField(token, stIndexControlNumber)
	version := tokenField(token, stIndexVersionCode)
	if version == "" && len(p.gs) > gsIndexVersion {
		version = p.gs[gsIndexVersion]
	}

	spec := findTransactionSpec(code, version)
	if spec == nil {
		return fmt.Errorf(
			"%w: %s / %s", ErrUnsupportedTransaction, code, version,
		)
	}

	p.spec = spec
	p.segmentCount = 1
	root := newLoopRecord(spec.root)
	p.model = &TransactionModel{
		TransactionCode: code,
		ControlNumber:   controlNumber,
		Version:         version,
		Spec:            spec,
		Delimiters:      p.delimiters,
		root:            root,
		location: Location{
			Interchange: 1,
			Group:       p.groupNumber,
			Transaction: len(p.groupModels) + 1,
		},
	}
	p.model.envelope = envelope{isa: p.isa, gs: p.gs}
	p.ctx = &parserContext{
		frames: []frame{{spec: spec.root, rec: root}},
	}

	// ST enters the header pseudo-loop directly; control segments are
	// not dispatched through the rule table
	p.enterPath(headerLoopName, false)
	seg := newSegmentRecord(token)
	seg.Index = 1
	p.attach(seg)
	return nil
}

func (p *parser) finishTransaction(token *SegmentToken) error {
	p.unwind(0)
	p.enterPath(footerLoopName, false)
	seg := newSegmentRecord(token)
	seg.Index = p.segmentCount
	p.attach(seg)

	p.model.segmentCount = p.segmentCount
	bindModel(p.model)
	validateModel(p.model)

	p.models = append(p.models, p.model)
	p.groupModels = append(p.groupModels, p.model)
	p.model = nil
	p.spec = nil
	p.ctx = nil
	return nil
}

// consumeSegment dispatches a non-control segment through the match
// rules and attaches it to the active loop record
func (p *parser) consumeSegment(token *SegmentToken) error {
	seg := newSegmentRecord(token)
	seg.Index = p.segmentCount
	// the base schema drives rule-condition field lookups; the
	// loop-local override takes effect on attachment
	seg.Spec = segmentSpecs[seg.ID]

	if seg.ID == hlSegmentId {
		p.ctx.hlSegment = seg
		p.model.hlSegments = append(p.model.hlSegments, seg)
	}

	active := p.ctx.active()
	rule := p.spec.match(seg, active.rec.Name, active.rec.path)
	if rule != nil {
		p.enterPath(rule.Target, rule.NewInstance)
		if rule.SetupHierarchy {
			switch seg.Get("hierarchical_level_code") {
			case hlLevelSubscriber:
				p.ctx.subscriber = p.ctx.active().rec
			case hlLevelDependent:
				p.ctx.patient = p.ctx.active().rec
			}
		}
	}
	p.attach(seg)
	return nil
}

// unwind pops frames until depth loop frames remain above the root
func (p *parser) unwind(depth int) {
	p.ctx.frames = p.ctx.frames[:depth+1]
}

// enterPath unwinds the frame stack to the closest common ancestor of
// the active loop and the target path, then descends to the target,
// allocating loop records along the way. When newInstance is set, a
// fresh record is appended for the final path component.
func (p *parser) enterPath(target string, newInstance bool) {
	components := strings.Split(target, loopPathSeparator)

	current := make([]string, 0, len(p.ctx.frames)-1)
	for _, f := range p.ctx.frames[1:] {
		current = append(current, f.rec.Name)
	}

	common := 0
	for common < len(current) && common < len(components) &&
		current[common] == components[common] {
		common++
	}
	// a new instance of the target loop must re-enter its final
	// component even when the active path already includes it
	if newInstance && common == len(components) {
		common = len(components) - 1
	}

	p.unwind(common)

	for i := common; i < len(components); i++ {
		path := strings.Join(components[:i+1], loopPathSeparator)
		loopSpec := p.spec.loopAt(path)
		parent := p.ctx.active().rec

		var rec *LoopRecord
		final := i == len(components)-1
		if loopSpec.Repeats() {
			existing := parent.LoopList(loopSpec.Name)
			if len(existing) == 0 || (final && newInstance) {
				rec = newLoopRecord(loopSpec)
				parent.attachLoop(loopSpec, rec)
			} else {
				rec = existing[len(existing)-1]
			}
		} else {
			rec = parent.Loop(loopSpec.Name)
			if rec == nil {
				rec = newLoopRecord(loopSpec)
				parent.attachLoop(loopSpec, rec)
			}
		}
		p.ctx.frames = append(p.ctx.frames, frame{spec: loopSpec, rec: rec})
	}
}

// attach stores the segment on the active loop record under its
// conventional field name, applying the loop-local-or-base schema and
// emitting structure warnings for schema mismatches.
func (p *parser) attach(seg *SegmentRecord) {
	active := p.ctx.active()
	key := segmentKey(seg.ID)
	seg.path = active.rec.path

	slot := active.spec.slot(key)
	if slot == nil {
		p.warn(seg, CodeDroppedSegment,
			"segment %s has no slot in loop %s; dropped",
			seg.ID,
			loopDisplayName(active.rec),
		)
		return
	}
	// the loop-local override (merged at registration) takes
	// precedence over the base schema
	seg.Spec = slot.Spec

	idx := active.spec.slotIndex(key)
	if idx < active.rec.maxSlotSeen {
		p.warn(seg, CodeUnexpectedOrder,
			"unexpected segment order: %s before the expected position in loop %s",
			seg.ID,
			loopDisplayName(active.rec),
		)
	} else {
		active.rec.maxSlotSeen = idx
	}

	if !active.rec.attachSegment(slot, seg) {
		p.warn(seg, CodeDroppedSegment,
			"segment %s repeats but loop %s allows a single occurrence; kept the first",
			seg.ID,
			loopDisplayName(active.rec),
		)
	}
}

// warn appends a structure warning to the in-progress model
func (p *parser) warn(
	seg *SegmentRecord,
	code string,
	format string,
	args ...any,
) {
	loc := p.model.location
	loc.Segment = seg.Index
	loc.Path = seg.path
	p.model.Diagnostics = append(p.model.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Kind:     KindStructure,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// closeGroup validates the GE trailer against the group's transactions
// and attaches the captured envelope to each model in the group
func (p *parser) closeGroup(token *SegmentToken) error {
	if p.model != nil {
		return fmt.Errorf(
			"%w: found GE inside transaction %s",
			ErrInvalidEnvelope,
			p.model.ControlNumber,
		)
	}
	if !p.groupOpen {
		return fmt.Errorf("%w: found GE before GS", ErrInvalidEnvelope)
	}
	p.groupOpen = false

	var envelopeDiags Diagnostics
	trailerCt := tokenField(token, geIndexNumberOfIncludedTransactionSets)
	if ct, err := strconv.Atoi(trailerCt); err != nil || ct != len(p.groupModels) {
		envelopeDiags = append(envelopeDiags, Diagnostic{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeEnvelopeCount,
			Message: fmt.Sprintf(
				"expected %s transaction sets from GE trailer count, got %d",
				trailerCt,
				len(p.groupModels),
			),
			Location: Location{Interchange: 1, Group: p.groupNumber},
		})
	}
	gsControl := ""
	if len(p.gs) > gsIndexControlNumber {
		gsControl = p.gs[gsIndexControlNumber]
	}
	geControl := tokenField(token, geIndexControlNumber)
	if gsControl != geControl {
		envelopeDiags = append(envelopeDiags, Diagnostic{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeControlNumber,
			Message: fmt.Sprintf(
				"GS control number %s does not match GE control number %s",
				gsControl,
				geControl,
			),
			Location: Location{Interchange: 1, Group: p.groupNumber},
		})
	}

	gs01 := ""
	if len(p.gs) > gsIndexFunctionalIdentifierCode {
		gs01 = p.gs[gsIndexFunctionalIdentifierCode]
	}
	for _, m := range p.groupModels {
		m.envelope.ge = token.Fields
		m.Diagnostics = append(m.Diagnostics, envelopeDiags...)
		expected := functionalIdentifierCodes[m.TransactionCode]
		if expected != "" && gs01 != expected {
			m.Diagnostics = append(m.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindStructure,
				Code:     CodeFunctionalId,
				Message: fmt.Sprintf(
					"functional identifier code %s does not match %s for transaction %s",
					gs01,
					expected,
					m.TransactionCode,
				),
				Location: Location{Interchange: 1, Group: p.groupNumber},
			})
		}
	}
	return nil
}

// closeInterchange validates the IEA trailer and attaches it to every
// model in the interchange
func (p *parser) closeInterchange(token *SegmentToken) error {
	if p.groupOpen {
		return fmt.Errorf("%w: found IEA before GE", ErrInvalidEnvelope)
	}

	var envelopeDiags Diagnostics
	trailerCt := tokenField(token, ieaIndexFunctionalGroupCount)
	if ct, err := strconv.Atoi(trailerCt); err != nil || ct != p.groupNumber {
		envelopeDiags = append(envelopeDiags, Diagnostic{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeEnvelopeCount,
			Message: fmt.Sprintf(
				"expected %s functional groups from IEA trailer count, got %d",
				trailerCt,
				p.groupNumber,
			),
			Location: Location{Interchange: 1},
		})
	}
	isaControl := ""
	if len(p.isa) > isaIndexControlNumber {
		isaControl = p.isa[isaIndexControlNumber]
	}
	ieaControl := tokenField(token, ieaIndexControlNumber)
	if isaControl != ieaControl {
		envelopeDiags = append(envelopeDiags, Diagnostic{
			Severity: SeverityError,
			Kind:     KindTransactionSemantic,
			Code:     CodeControlNumber,
			Message: fmt.Sprintf(
				"ISA control number %s does not match IEA control number %s",
				isaControl,
				ieaControl,
			),
			Location: Location{Interchange: 1},
		})
	}

	for _, m := range p.models {
		m.envelope.iea = token.Fields
		m.Diagnostics = append(m.Diagnostics, envelopeDiags...)
	}
	return nil
}

// tokenField returns the token field at the given index, or an empty
// string
func tokenField(token *SegmentToken, index int) string {
	if index >= len(token.Fields) {
		return ""
	}
	return token.Fields[index]
}

// loopDisplayName names a loop record for messages, substituting
// "transaction" at the root
func loopDisplayName(rec *LoopRecord) string {
	if rec.Name == "" {
		return "transaction"
	}
	return rec.Name
}
