package x12

// 005010X218 premium payment: the 820 payroll deducted and other group
// premium payment transaction set.
//
//   header (ST, BPR, TRN, CUR, REF, DTM)
//   loop_1000a (premium receiver)
//   loop_1000b (premium payer)
//   loop_2000a (organization summary remittance)
//     loop_2300a (organization summary remittance detail)
//   loop_2000b (individual remittance)
//     loop_2100b (individual name)
//     loop_2300b (individual premium remittance detail)
//   footer

const versionX218 = "005010X218"

func x218Spec() *TransactionSpec {
	loop2300a := &LoopSpec{
		Name:        "loop_2300a",
		Description: "Organization Summary Remittance Detail",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(rmrSegment, Required),
			RepeatSlot(refSegment, Situational, 0, 4),
			RepeatSlot(dtmSegment, Situational, 0, 3),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2000a := &LoopSpec{
		Name:        "loop_2000a",
		Description: "Organization Summary Remittance",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(
				Override(entSegment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"assigned_number": {Usage: Required},
					},
				}),
				Required,
			),
		},
		Loops: []*LoopSpec{loop2300a},
	}

	loop2300b := &LoopSpec{
		Name:        "loop_2300b",
		Description: "Individual Premium Remittance Detail",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(rmrSegment, Required),
			RepeatSlot(refSegment, Situational, 0, 4),
			RepeatSlot(dtmSegment, Situational, 0, 3),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2100b := &LoopSpec{
		Name:        "loop_2100b",
		Description: "Individual Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("EY", "IL"), Required),
			RepeatSlot(refSegment, Situational, 0, 2),
		},
	}
	loop2000b := &LoopSpec{
		Name:        "loop_2000b",
		Description: "Individual Remittance",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(
				Override(entSegment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"assigned_number":               {Usage: Required},
						"entity_identifier_code":        {Literal: "2J"},
						"identification_code_qualifier": {ValidCodes: []string{"34", "EI"}},
					},
				}),
				Required,
			),
		},
		Loops: []*LoopSpec{loop2100b, loop2300b},
	}

	loop1000a := &LoopSpec{
		Name:        "loop_1000a",
		Description: "Premium Receiver",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code": {Literal: "PE"},
					},
				}),
				Required,
			),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(refSegment, Situational, 0, 4),
			Slot(perSegment, Situational),
		},
	}
	loop1000b := &LoopSpec{
		Name:        "loop_1000b",
		Description: "Premium Payer",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(n1Segment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"entity_identifier_code": {Literal: "PR"},
					},
				}),
				Required,
			),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(refSegment, Situational, 0, 4),
			Slot(perSegment, Situational),
		},
	}

	rules := []*MatchRule{
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PE"},
			},
			Target: "loop_1000a",
		},
		{
			SegmentID: "N1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PR"},
			},
			Target: "loop_1000b",
		},
		{
			SegmentID: "ENT",
			Conditions: map[string][]string{
				"entity_identifier_code": {"2J"},
			},
			Target:      "loop_2000b",
			NewInstance: true,
		},
		{
			SegmentID:   "ENT",
			Target:      "loop_2000a",
			NewInstance: true,
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000b"},
			Target:    "loop_2000b/loop_2100b",
		},
		{
			SegmentID: "RMR",
			Context: []string{
				"loop_2000a", "loop_2300a",
			},
			Target:      "loop_2000a/loop_2300a",
			NewInstance: true,
		},
		{
			SegmentID: "RMR",
			Context: []string{
				"loop_2000b", "loop_2100b", "loop_2300b",
			},
			Target:      "loop_2000b/loop_2300b",
			NewInstance: true,
		},
	}

	return &TransactionSpec{
		Key:             "820-" + versionX218,
		TransactionCode: "820",
		Version:         versionX218,
		Header: headerLoop(
			"820", versionX218,
			Slot(bprSegment, Required),
			Slot(
				Override(trnSegment, SegmentOverride{
					Fields: map[string]FieldOverride{
						"trace_type_code": {ValidCodes: []string{"1", "3"}},
					},
				}),
				Situational,
			),
			Slot(curSegment, Situational),
			RepeatSlot(refSegment, Situational, 0, 4),
			RepeatSlot(dtmSegment, Situational, 0, 4),
		),
		Loops:  []*LoopSpec{loop1000a, loop1000b, loop2000a, loop2000b},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x218Spec())
}
