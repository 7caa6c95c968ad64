package x12

import (
	"strings"
	"testing"
)

// x271Message is an eligibility response with two benefit loops and a
// benefit related entity
func x271Message(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "271.txt")
}

func TestParse271BenefitLoops(t *testing.T) {
	model := singleModel(t, x271Message(t))

	assertEqual(t, model.TransactionCode, "271")
	assertEqual(t, model.Version, "005010X279A1")
	if !model.Valid() {
		t.Fatalf("expected a valid model, got: %v", model.Diagnostics)
	}
	assertEqual(t, len(model.Diagnostics), 0)

	name := model.Root().
		LoopList("loop_2000a")[0].
		LoopList("loop_2000b")[0].
		LoopList("loop_2000c")[0].
		Loop("loop_2100c")
	assertNotNil(t, name)

	benefits := name.LoopList("loop_2110c")
	assertEqual(t, len(benefits), 2)

	first := benefits[0].Segment("eb_segment")
	assertEqual(t, first.Get("eligibility_benefit_information"), "1")
	assertEqual(t, first.Get("plan_coverage_description"), "GOLD PLAN")

	related := benefits[0].LoopList("loop_2120c")
	assertEqual(t, len(related), 1)
	assertEqual(
		t,
		related[0].Segment("nm1_segment").Get("name_last_or_organization_name"),
		"JONES",
	)

	second := benefits[1]
	assertEqual(
		t,
		second.Segment("eb_segment").Get("eligibility_benefit_information"),
		"L",
	)
	messages := second.SegmentList("msg_segment")
	assertEqual(t, len(messages), 1)
}

func TestParse271LoopReentry(t *testing.T) {
	model := singleModel(t, x271Message(t))

	name := model.Root().
		LoopList("loop_2000a")[0].
		LoopList("loop_2000b")[0].
		LoopList("loop_2000c")[0].
		Loop("loop_2100c")

	// the LS/LE pair brackets the related entity loop within the
	// first benefit loop; the second EB re-opens a fresh instance
	benefits := name.LoopList("loop_2110c")
	ls := benefits[0].Segment("ls_segment")
	le := benefits[0].Segment("le_segment")
	assertNotNil(t, ls)
	assertNotNil(t, le)
	assertEqual(t, ls.Get("loop_id_code"), "2120")
	if benefits[1].Segment("ls_segment") != nil {
		t.Error("expected the second benefit loop to have no LS segment")
	}
}

// TestRender271RoundTrip verifies the round-trip property for a model
// whose wire order differs from declared order (the LS/LE bracket):
// re-parsing the rendered output yields an equivalent model, and the
// rendering is stable.
func TestRender271RoundTrip(t *testing.T) {
	model := singleModel(t, x271Message(t))

	rendered, err := Render(model, false)
	assertNoError(t, err)

	reparsed := singleModel(t, rendered)
	assertEqual(t, len(reparsed.Diagnostics), 0)
	assertEqual(t, reparsed.TransactionCode, model.TransactionCode)
	assertEqual(t, reparsed.SegmentCount(), model.SegmentCount())

	name := reparsed.Root().
		LoopList("loop_2000a")[0].
		LoopList("loop_2000b")[0].
		LoopList("loop_2000c")[0].
		Loop("loop_2100c")
	assertEqual(t, len(name.LoopList("loop_2110c")), 2)

	rerendered, err := Render(reparsed, false)
	assertNoError(t, err)
	assertEqual(t, string(rerendered), string(rendered))
}

func Test271MissingSubscriberNameLoop(t *testing.T) {
	message := replaceNewlines(t, x271Message(t))
	// removing the subscriber NM1 (and the related entity bracket that
	// would otherwise open a name loop) leaves loop_2100c unopened
	for _, seg := range []string{
		"NM1*IL*1*SMITH*ROBERT****MI*11122333301~",
		"LS*2120~",
		"NM1*P3*1*JONES*MARCUS****SV*0202034~",
		"LE*2120~",
	} {
		message = strings.Replace(message, seg, "", 1)
	}
	message = strings.Replace(message, "SE*20*4321~", "SE*16*4321~", 1)

	model := singleModel(t, []byte(message))
	found := diagnosticsWithCode(model.Diagnostics, CodeMissingLoop)
	if len(found) == 0 {
		t.Fatalf(
			"expected a missing loop diagnostic, got: %v", model.Diagnostics,
		)
	}
}
