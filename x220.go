package x12

// 005010X220A1 enrollment & maintenance: the 834 benefit enrollment
// transaction set.
//
//   header (ST, BGN, REF, DTP, QTY)
//   loop_1000a (sponsor name)
//   loop_1000b (payer)
//   loop_2000 (member level detail)
//     loop_2100a (member name)
//     loop_2300 (health coverage)
//       loop_2310 (provider information)
//   footer

const versionX220 = "005010X220A1"

func x220Spec() *TransactionSpec {
	loop2310 := &LoopSpec{
		Name:        "loop_2310",
		Description: "Provider Information",
		Usage:       Situational,
		RepeatMin:   1,
		RepeatMax:   30,
		Segments: []*SegmentSlot{
			Slot(lxSegment, Required),
			Slot(nm1Segment, Required),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(perSegment, Situational, 0, 2),
			Slot(prvSegment, Situational),
		},
	}
	loop2300 := &LoopSpec{
		Name:        "loop_2300",
		Description: "Health Coverage",
		Usage:       Situational,
		RepeatMin:   1,
		RepeatMax:   99,
		Segments: []*SegmentSlot{
			Slot(hdSegment, Required),
			RepeatSlot(dtpSegment, Required, 1, 6),
			RepeatSlot(amtSegment, Situational, 0, 9),
			RepeatSlot(refSegment, Situational, 0, 5),
			RepeatSlot(idcSegment, Situational, 0, 3),
		},
		Loops: []*LoopSpec{loop2310},
		Validators: []LoopValidator{
			validateDuplicateRefCodes,
			validateDuplicateAmtCodes,
			validateDuplicateDateQualifiers,
		},
	}
	loop2100a := &LoopSpec{
		Name:        "loop_2100a",
		Description: "Member Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("74", "IL"), Required),
			Slot(perSegment, Situational),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(dmgSegment, Situational),
		},
	}
	loop2000 := &LoopSpec{
		Name:        "loop_2000",
		Description: "Member Level Detail",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(insSegment, Required),
			RepeatSlot(refSegment, Required, 1, 13),
			RepeatSlot(dtpSegment, Situational, 0, 24),
			Slot(actSegment, Situational),
		},
		Loops: []*LoopSpec{loop2100a, loop2300},
		Validators: []LoopValidator{
			validateDuplicateRefCodes,
		},
	}
	loop1000a := &LoopSpec{
		Name:        "loop_1000a",
		Description: "Sponsor Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code":        {Literal: "P5"},
						"identification_code_qualifier": {ValidCodes: []string{"24", "94", "FI"}},
						"identification_code":           {Usage: Required},
					},
				}),
				Required,
			),
		},
	}
	loop1000b := &LoopSpec{
		Name:        "loop_1000b",
		Description: "Payer",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code":        {Literal: "IN"},
						"identification_code_qualifier": {ValidCodes: []string{"94", "FI", "XV"}},
						"identification_code":           {Usage: Required},
					},
				}),
				Required,
			),
		},
	}

	rules := []*MatchRule{
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"P5"},
			},
			Target: "loop_1000a",
		},
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"IN"},
			},
			Target: "loop_1000b",
		},
		{
			SegmentID:   "INS",
			Target:      "loop_2000",
			NewInstance: true,
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000"},
			Target:    "loop_2000/loop_2100a",
		},
		{
			SegmentID: "HD",
			Context: []string{
				"loop_2000", "loop_2100a", "loop_2300", "loop_2310",
			},
			Target:      "loop_2000/loop_2300",
			NewInstance: true,
		},
		{
			SegmentID:   "LX",
			Context:     []string{"loop_2300", "loop_2310"},
			Target:      "loop_2000/loop_2300/loop_2310",
			NewInstance: true,
		},
	}

	return &TransactionSpec{
		Key:             "834-" + versionX220,
		TransactionCode: "834",
		Version:         versionX220,
		Header: headerLoop(
			"834", versionX220,
			Slot(bgnSegment, Required),
			Slot(refSegment, Situational),
			RepeatSlot(dtpSegment, Situational, 0, 6),
			RepeatSlot(qtySegment, Situational, 0, 3),
		),
		Loops:  []*LoopSpec{loop1000a, loop1000b, loop2000},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x220Spec())
}
