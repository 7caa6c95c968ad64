package x12

import (
	"strings"
	"testing"
)

// x835Message is a single-claim remittance advice with one service
// payment
func x835Message(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "835.txt")
}

func TestParse835ClaimPayment(t *testing.T) {
	model := singleModel(t, x835Message(t))

	assertEqual(t, model.TransactionCode, "835")
	// ST03 is absent; the implementation version comes from GS08
	assertEqual(t, model.Version, "005010X221A1")
	if !model.Valid() {
		t.Fatalf("expected a valid model, got: %v", model.Diagnostics)
	}

	header := model.Header()
	bpr := header.Segment("bpr_segment")
	assertNotNil(t, bpr)
	amount, ok := bpr.Value("total_actual_provider_payment_amount").(float64)
	if !ok {
		t.Fatalf("expected a float64 payment amount")
	}
	assertEqual(t, amount, 150.0)

	payer := model.Root().Loop("loop_1000a")
	assertNotNil(t, payer)
	assertEqual(t, payer.Segment("n1_segment").Get("name"), "INSURANCE COMPANY")

	payee := model.Root().Loop("loop_1000b")
	assertNotNil(t, payee)
	assertEqual(
		t,
		payee.Segment("n1_segment").Get("identification_code"),
		"1123454567",
	)

	lines := model.Root().LoopList("loop_2000")
	assertEqual(t, len(lines), 1)
	claims := lines[0].LoopList("loop_2100")
	assertEqual(t, len(claims), 1)

	clp := claims[0].Segment("clp_segment")
	assertEqual(t, clp.Get("patient_control_number"), "PATACCT1")

	services := claims[0].LoopList("loop_2110")
	assertEqual(t, len(services), 1)
	svc := services[0].Segment("svc_segment")
	// the composite procedure identifier is preserved verbatim
	assertEqual(
		t,
		svc.Get("composite_medical_procedure_identifier_1"),
		"HC:99213",
	)
}

func TestParse835ClaimBalance(t *testing.T) {
	message := replaceNewlines(t, x835Message(t))
	// drop the adjustment so payment + adjustments != charge
	message = strings.Replace(message, "CAS*CO*45*25~", "", 1)
	message = strings.Replace(message, "SE*15*112233~", "SE*14*112233~", 1)

	model := singleModel(t, []byte(message))
	found := diagnosticsWithCode(model.Diagnostics, CodeBalance)
	assertEqual(t, len(found), 1)
	assertEqual(t, found[0].Kind, KindLoopSemantic)
}

func TestRender835RoundTrip(t *testing.T) {
	message := x835Message(t)
	model := singleModel(t, message)

	rendered, err := Render(model, false)
	assertNoError(t, err)
	assertEqual(t, string(rendered), replaceNewlines(t, message))
}
