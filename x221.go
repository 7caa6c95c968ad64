package x12

import "fmt"

// 005010X221A1 claim payment: the 835 remittance advice.
//
//   header (ST, BPR, TRN, CUR, REF, DTM)
//   loop_1000a (payer identification)
//   loop_1000b (payee identification)
//   loop_2000 (claim payment line item)
//     loop_2100 (claim payment information)
//       loop_2110 (service payment information)
//   footer (PLB, SE)

const versionX221 = "005010X221A1"

// x221ClaimBalance checks that the claim payment amount plus claim and
// service level adjustments balances against the claim charge amount
func x221ClaimBalance(loop *LoopRecord) []Diagnostic {
	clp := loop.Segment("clp_segment")
	if clp == nil {
		return nil
	}
	charge, chargeOk := clp.Value("total_claim_charge_amount").(float64)
	payment, paymentOk := clp.Value("claim_payment_amount").(float64)
	if !chargeOk || !paymentOk {
		return nil
	}

	adjusted := payment
	addAdjustments := func(segments []*SegmentRecord) {
		for _, cas := range segments {
			for i := 1; i <= 6; i++ {
				name := fmt.Sprintf("adjustment_amount_%d", i)
				if amount, ok := cas.Value(name).(float64); ok {
					adjusted += amount
				}
			}
		}
	}
	addAdjustments(loop.SegmentList("cas_segment"))
	for _, service := range loop.LoopList("loop_2110") {
		addAdjustments(service.SegmentList("cas_segment"))
	}

	if adjusted != charge {
		return []Diagnostic{loopDiagnostic(
			loop,
			CodeBalance,
			"claim amount %.2f does not balance against charge amount %.2f",
			adjusted,
			charge,
		)}
	}
	return nil
}

func x221Spec() *TransactionSpec {
	loop2110 := &LoopSpec{
		Name:        "loop_2110",
		Description: "Service Payment Information",
		Usage:       Situational,
		RepeatMin:   1,
		RepeatMax:   999,
		Segments: []*SegmentSlot{
			Slot(svcSegment, Required),
			RepeatSlot(dtmSegment, Situational, 0, 2),
			RepeatSlot(casSegment, Situational, 0, 99),
			RepeatSlot(refSegment, Situational, 0, 24),
			RepeatSlot(amtSegment, Situational, 0, 9),
			RepeatSlot(qtySegment, Situational, 0, 6),
			RepeatSlot(lqSegment, Situational, 0, 99),
		},
		Validators: []LoopValidator{validateDuplicateAmtCodes},
	}
	loop2100 := &LoopSpec{
		Name:        "loop_2100",
		Description: "Claim Payment Information",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(clpSegment, Required),
			RepeatSlot(casSegment, Situational, 0, 99),
			RepeatSlot(nm1Segment, Required, 1, 7),
			Slot(miaSegment, Situational),
			Slot(moaSegment, Situational),
			RepeatSlot(refSegment, Situational, 0, 15),
			RepeatSlot(dtmSegment, Situational, 0, 5),
			RepeatSlot(perSegment, Situational, 0, 2),
			RepeatSlot(amtSegment, Situational, 0, 13),
			RepeatSlot(qtySegment, Situational, 0, 14),
		},
		Loops: []*LoopSpec{loop2110},
		Validators: []LoopValidator{
			x221ClaimBalance,
			validateDuplicateAmtCodes,
		},
	}
	loop2000 := &LoopSpec{
		Name:        "loop_2000",
		Description: "Claim Payment Line Item",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(lxSegment, Required),
			Slot(ts3Segment, Situational),
		},
		Loops: []*LoopSpec{loop2100},
	}
	loop1000a := &LoopSpec{
		Name:        "loop_1000a",
		Description: "Payer Identification",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code": {Literal: "PR"},
						"name":                   {Usage: Required},
					},
				}),
				Required,
			),
			Slot(n3Segment, Required),
			Slot(n4Segment, Required),
			RepeatSlot(refSegment, Situational, 0, 4),
			RepeatSlot(perSegment, Situational, 0, 3),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop1000b := &LoopSpec{
		Name:        "loop_1000b",
		Description: "Payee Identification",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code":        {Literal: "PE"},
						"identification_code_qualifier": {Usage: Required},
						"identification_code":           {Usage: Required},
					},
				}),
				Required,
			),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(refSegment, Situational, 0, 10),
			Slot(rdmSegment, Situational),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}

	rules := []*MatchRule{
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PR"},
			},
			Target: "loop_1000a",
		},
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PE"},
			},
			Target: "loop_1000b",
		},
		{
			SegmentID:   "LX",
			Target:      "loop_2000",
			NewInstance: true,
		},
		{
			SegmentID:   "CLP",
			Target:      "loop_2000/loop_2100",
			NewInstance: true,
		},
		{
			SegmentID:   "SVC",
			Target:      "loop_2000/loop_2100/loop_2110",
			NewInstance: true,
		},
		{
			SegmentID: "PLB",
			Target:    footerLoopName,
		},
	}

	return &TransactionSpec{
		Key:             "835-" + versionX221,
		TransactionCode: "835",
		Version:         versionX221,
		Header: headerLoop(
			"835", versionX221,
			Slot(bprSegment, Required),
			Slot(
				Override(trnSegment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"trace_type_code": {Literal: "1"},
						"originating_company_identifier": {
							Usage: Required,
						},
					},
				}),
				Required,
			),
			Slot(curSegment, Situational),
			RepeatSlot(refSegment, Situational, 0, 2),
			Slot(dtmSegment, Situational),
		),
		Loops: []*LoopSpec{loop1000a, loop1000b, loop2000},
		Footer: footerLoop(
			RepeatSlot(plbSegment, Situational, 0, 99),
		),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x221Spec())
}
