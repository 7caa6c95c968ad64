package x12

import (
	"errors"
	"strings"
	"testing"
)

// TestParse270SubscriberOnly covers the subscriber-only eligibility
// inquiry: one information source, one receiver, one subscriber, no
// diagnostics.
func TestParse270SubscriberOnly(t *testing.T) {
	model := singleModel(t, x270Message(t))

	assertEqual(t, model.TransactionCode, "270")
	assertEqual(t, model.ControlNumber, "0001")
	assertEqual(t, model.Version, "005010X279A1")
	assertEqual(t, model.SegmentCount(), 17)

	if !model.Valid() {
		t.Fatalf("expected a valid model, got: %v", model.Diagnostics)
	}
	assertEqual(t, len(model.Diagnostics), 0)

	st := model.Header().Segment("st_segment")
	assertNotNil(t, st)
	assertEqual(t, st.Get("transaction_set_identifier_code"), "270")

	sources := model.Root().LoopList("loop_2000a")
	assertEqual(t, len(sources), 1)
	sourceHL := sources[0].Segment("hl_segment")
	assertEqual(t, sourceHL.Get("hierarchical_level_code"), "20")

	receivers := sources[0].LoopList("loop_2000b")
	assertEqual(t, len(receivers), 1)
	receiverHL := receivers[0].Segment("hl_segment")
	assertEqual(t, receiverHL.Get("hierarchical_level_code"), "21")

	subscribers := receivers[0].LoopList("loop_2000c")
	assertEqual(t, len(subscribers), 1)
	subscriberHL := subscribers[0].Segment("hl_segment")
	assertEqual(t, subscriberHL.Get("hierarchical_level_code"), "22")

	name := subscribers[0].Loop("loop_2100c")
	assertNotNil(t, name)
	nm1 := name.Segment("nm1_segment")
	assertEqual(t, nm1.Get("name_last_or_organization_name"), "SMITH")
	assertEqual(t, nm1.Get("name_first"), "ROBERT")

	eligibility := name.Loop("loop_2110c")
	assertNotNil(t, eligibility)
	eq := eligibility.Segment("eq_segment")
	assertNotNil(t, eq)

	serviceTypes, ok := eq.Value("service_type_code").([]string)
	if !ok {
		t.Fatalf("expected []string, got %T", eq.Value("service_type_code"))
	}
	assertSliceContains(t, serviceTypes, "30")
}

// TestParse270LoopDispatch verifies HL-driven loop entry: the first
// HL enters the information source loop, the second pops and enters
// the receiver loop, and the receiver's parent id references the
// source.
func TestParse270LoopDispatch(t *testing.T) {
	model := singleModel(t, x270Message(t))

	source := model.Root().LoopList("loop_2000a")[0]
	sourceHL := source.Segment("hl_segment")
	assertEqual(t, sourceHL.Get("hierarchical_id_number"), "1")
	assertEqual(t, sourceHL.Get("hierarchical_parent_id_number"), "")

	receiver := source.LoopList("loop_2000b")[0]
	receiverHL := receiver.Segment("hl_segment")
	assertEqual(t, receiverHL.Get("hierarchical_id_number"), "2")
	assertEqual(t, receiverHL.Get("hierarchical_parent_id_number"), "1")
	assertEqual(t, receiverHL.Path(), "loop_2000a/loop_2000b")
}

func TestParse270TypedValues(t *testing.T) {
	model := singleModel(t, x270Message(t))

	se := model.Footer().Segment("se_segment")
	assertNotNil(t, se)
	count, ok := se.Value("transaction_segment_count").(int)
	if !ok {
		t.Fatalf(
			"expected int, got %T",
			se.Value("transaction_segment_count"),
		)
	}
	assertEqual(t, count, 17)
}

func TestParseEnvelopeAccessors(t *testing.T) {
	model := singleModel(t, x270Message(t))

	header := model.InterchangeHeader()
	assertNotNil(t, header)
	assertEqual(t, header.ControlNumber, "000000907")
	assertEqual(t, header.UsageIndicator, "T")
	assertEqual(t, strings.TrimSpace(header.SenderID), "890069730")

	group := model.GroupHeader()
	assertNotNil(t, group)
	assertEqual(t, group.IdentifierCode, "HS")
	assertEqual(t, group.ControlNumber, "0001")
	assertEqual(t, group.VersionReleaseIndustryIdentifierCode, "005010X279A1")
}

func TestParseDuplicateSTIsFatal(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	message = strings.Replace(
		message,
		"BHT*0022*13*10001234*20200929*1319~",
		"BHT*0022*13*10001234*20200929*1319~ST*270*0002*005010X279A1~",
		1,
	)
	_, err := Models(strings.NewReader(message))
	assertErrorNotNil(t, err)
	if !errors.Is(err, ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
}

func TestParseUnsupportedTransaction(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	message = strings.ReplaceAll(message, "ST*270*0001*005010X279A1~", "ST*999*0001*005010X999~")
	_, err := Models(strings.NewReader(message))
	assertErrorNotNil(t, err)
	if !errors.Is(err, ErrUnsupportedTransaction) {
		t.Fatalf("expected ErrUnsupportedTransaction, got %v", err)
	}
}

func TestParseMissingIEAIsFatal(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	message = strings.TrimSuffix(message, "IEA*1*000000907~")
	_, err := Models(strings.NewReader(message))
	assertErrorNotNil(t, err)
	if !errors.Is(err, ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
}

// TestParseDroppedSegmentWarning verifies that a segment with no slot
// in the active loop is dropped with a structure warning rather than
// aborting the parse.
func TestParseDroppedSegmentWarning(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	// CUR has no slot anywhere in the 270; count adjusts to match
	message = strings.Replace(
		message,
		"EQ*30~",
		"EQ*30~CUR*PR*USD~",
		1,
	)
	message = strings.Replace(message, "SE*17*0001~", "SE*18*0001~", 1)

	model := singleModel(t, []byte(message))
	warnings := diagnosticsWithCode(model.Diagnostics, CodeDroppedSegment)
	assertEqual(t, len(warnings), 1)
	assertEqual(t, warnings[0].Severity, SeverityWarning)
	assertEqual(t, warnings[0].Kind, KindStructure)
	// the dropped segment still counts toward the SE segment count
	assertEqual(t, model.SegmentCount(), 18)
	if model.Diagnostics.HasErrors() {
		t.Fatalf("expected warnings only, got: %v", model.Diagnostics)
	}
}

func TestParseMismatchedGroupControlNumber(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	message = strings.Replace(message, "GE*1*0001~", "GE*1*0002~", 1)

	model := singleModel(t, []byte(message))
	found := diagnosticsWithCode(model.Diagnostics, CodeControlNumber)
	assertEqual(t, len(found), 1)
	assertEqual(t, found[0].Severity, SeverityError)
}

func TestParseFunctionalIdentifierMismatch(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	// HP is the 835 functional identifier; a 270 group expects HS
	message = strings.Replace(message, "GS*HS*", "GS*HP*", 1)

	model := singleModel(t, []byte(message))
	found := diagnosticsWithCode(model.Diagnostics, CodeFunctionalId)
	assertEqual(t, len(found), 1)
	assertEqual(t, found[0].Severity, SeverityWarning)
	// a mismatched identifier alone does not invalidate the model
	assertEqual(t, model.Valid(), true)
}

func TestParseDistinctInputsInParallel(t *testing.T) {
	message := x270Message(t)
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			models, err := Models(strings.NewReader(string(message)))
			if err == nil && len(models) != 1 {
				err = errors.New("expected one model")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assertNoError(t, <-done)
	}
}
