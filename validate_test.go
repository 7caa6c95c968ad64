package x12

import (
	"strings"
	"testing"
)

// TestNM1MixedEntityRejection covers the organizational NM1 carrying
// a person name field: one segment-semantic error, and the model
// still binds.
func TestNM1MixedEntityRejection(t *testing.T) {
	model := singleModel(t, x270MessageMixedEntity(t))

	errs := model.Diagnostics.Errors()
	assertEqual(t, len(errs), 1)
	assertEqual(t, errs[0].Kind, KindSegmentSemantic)
	assertEqual(
		t,
		errs[0].Message,
		"Invalid field usage for Organization/Non-Person Entity",
	)

	// binding proceeded despite the diagnostic
	source := model.Root().LoopList("loop_2000a")[0]
	nm1 := source.Loop("loop_2100a").Segment("nm1_segment")
	assertNotNil(t, nm1)
	assertEqual(t, nm1.Get("name_last_or_organization_name"), "PAYER C")
	assertEqual(t, nm1.Get("name_first"), "JOHN")
}

// TestDuplicateRefQualifier covers two REF segments with the same
// qualifier code within a dependent name loop: one loop-semantic
// error.
func TestDuplicateRefQualifier(t *testing.T) {
	model := singleModel(t, x270MessageDuplicateRef(t))

	errs := model.Diagnostics.Errors()
	assertEqual(t, len(errs), 1)
	assertEqual(t, errs[0].Kind, KindLoopSemantic)
	assertEqual(t, errs[0].Code, CodeDuplicateCode)
	if !strings.Contains(errs[0].Message, "6P") {
		t.Errorf(
			"expected the duplicate qualifier in the message, got: %s",
			errs[0].Message,
		)
	}
	assertSliceContains(
		t,
		[]string{errs[0].Location.Path},
		"loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d",
	)
}

// TestSegmentCountMismatch covers SE01 off by one: exactly one
// transaction-semantic error, and nothing else.
func TestSegmentCountMismatch(t *testing.T) {
	model := singleModel(t, x270MessageSegmentCount(t))

	assertEqual(t, len(model.Diagnostics), 1)
	d := model.Diagnostics[0]
	assertEqual(t, d.Severity, SeverityError)
	assertEqual(t, d.Kind, KindTransactionSemantic)
	assertEqual(t, d.Code, CodeSegmentCount)
	assertEqual(t, d.Message, "SE segment count 18 != actual count 17")
}

func TestHLUnknownParent(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	// point the subscriber HL at a parent id that was never emitted
	message = strings.Replace(
		message, "HL*3*2*22*0~", "HL*3*9*22*0~", 1,
	)
	model := singleModel(t, []byte(message))

	found := diagnosticsWithCode(model.Diagnostics, CodeHierarchy)
	if len(found) == 0 {
		t.Fatalf(
			"expected a hierarchy diagnostic, got: %v", model.Diagnostics,
		)
	}
	if !strings.Contains(found[0].Message, "'9'") {
		t.Errorf("expected the unknown parent id, got: %s", found[0].Message)
	}

	// the segment is attached despite the dangling reference
	subscribers := model.Root().
		LoopList("loop_2000a")[0].
		LoopList("loop_2000b")[0].
		LoopList("loop_2000c")
	assertEqual(t, len(subscribers), 1)
}

func TestShapeDiagnosticsInvalidCode(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	// DMG03 only allows F/M
	message = strings.Replace(
		message, "DMG*D8*19430519*M~", "DMG*D8*19430519*X~", 1,
	)
	model := singleModel(t, []byte(message))

	found := diagnosticsWithCode(model.Diagnostics, CodeInvalidCode)
	assertEqual(t, len(found), 1)
	assertEqual(t, found[0].Kind, KindShape)
	assertEqual(t, found[0].Severity, SeverityError)
	if found[0].Location.Field != 3 {
		t.Errorf("expected field 3, got %d", found[0].Location.Field)
	}
}

func TestShapeDiagnosticsDateFormat(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	message = strings.Replace(
		message, "DTP*291*D8*20200929~", "DTP*291*D8*2020099~", 1,
	)
	model := singleModel(t, []byte(message))
	if !model.Diagnostics.HasErrors() {
		t.Fatalf("expected diagnostics for a malformed date")
	}
}

func TestMissingRequiredSegment(t *testing.T) {
	message := replaceNewlines(t, x270Message(t))
	// drop the subscriber NM1 entirely
	message = strings.Replace(
		message, "NM1*IL*1*SMITH*ROBERT****MI*11122333301~", "", 1,
	)
	message = strings.Replace(message, "SE*17*0001~", "SE*16*0001~", 1)
	model := singleModel(t, []byte(message))

	found := diagnosticsWithCode(model.Diagnostics, CodeMissingLoop)
	if len(found) == 0 {
		t.Fatalf(
			"expected a missing loop diagnostic, got: %v",
			model.Diagnostics,
		)
	}
}

func TestValidateNM1PairedIdentification(t *testing.T) {
	seg := &SegmentRecord{
		ID:   "NM1",
		Spec: nm1Segment,
		Raw: []string{
			"NM1", "IL", "1", "SMITH", "ROBERT", "", "", "", "MI", "",
		},
	}
	out := validateNM1EntityType(seg)
	assertEqual(t, len(out), 1)
	assertEqual(
		t,
		out[0].Message,
		"Identification code usage requires the code qualifier and code value",
	)
}

func TestValidateDatePeriodFormatRange(t *testing.T) {
	seg := &SegmentRecord{
		ID:   "DTP",
		Spec: dtpSegment,
		Raw:  []string{"DTP", "291", "RD8", "20200901-20200930"},
	}
	assertEqual(t, len(validateDatePeriodFormat(seg)), 0)

	seg.Raw[3] = "20200901"
	out := validateDatePeriodFormat(seg)
	assertEqual(t, len(out), 1)
	assertEqual(t, out[0].Message, "Invalid date range 20200901")
}

func TestDiagnosticsFiltering(t *testing.T) {
	ds := Diagnostics{
		{Severity: SeverityError, Code: "a"},
		{Severity: SeverityWarning, Code: "b"},
		{Severity: SeverityError, Code: "c"},
	}
	assertEqual(t, ds.HasErrors(), true)
	assertEqual(t, len(ds.Errors()), 2)
	assertEqual(t, len(ds.Warnings()), 1)
	if ds.Error() == "" {
		t.Error("expected a non-empty error string")
	}
}
