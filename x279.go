package x12

// 005010X279A1 eligibility: the 270 inquiry and 271 response
// transaction sets.
//
// Loop hierarchy for both directions:
//
//   header
//   loop_2000a (information source)
//     loop_2100a (information source name)
//     loop_2000b (information receiver)
//       loop_2100b (information receiver name)
//       loop_2000c (subscriber)
//         loop_2100c (subscriber name)
//           loop_2110c (eligibility/benefit)
//         loop_2000d (dependent)
//           loop_2100d (dependent name)
//             loop_2110d (eligibility/benefit)
//   footer

const versionX279 = "005010X279A1"

// x270SubscriberName requires a first name when the subscriber is the
// patient (no dependent levels below it)
func x270SubscriberName(m *TransactionModel) []Diagnostic {
	var out []Diagnostic
	for _, source := range m.Root().LoopList("loop_2000a") {
		for _, receiver := range source.LoopList("loop_2000b") {
			for _, subscriber := range receiver.LoopList("loop_2000c") {
				hl := subscriber.Segment("hl_segment")
				name := subscriber.Loop("loop_2100c")
				if hl == nil || name == nil {
					continue
				}
				nm1 := name.Segment("nm1_segment")
				if nm1 == nil {
					continue
				}
				if hl.Get("hierarchical_child_code") == "0" &&
					nm1.Get("name_first") == "" {
					out = append(out, Diagnostic{
						Severity: SeverityError,
						Kind:     KindTransactionSemantic,
						Code:     CodeRequired,
						Message:  "name_first is required when the subscriber is the patient",
						Location: Location{
							Segment: nm1.Index,
							Path:    nm1.Path(),
						},
					})
				}
			}
		}
	}
	return out
}

// x270SubscriberChildCode requires a dependent loop when the
// subscriber's HL04 indicates child levels
func x270SubscriberChildCode(m *TransactionModel) []Diagnostic {
	var out []Diagnostic
	for _, source := range m.Root().LoopList("loop_2000a") {
		for _, receiver := range source.LoopList("loop_2000b") {
			for _, subscriber := range receiver.LoopList("loop_2000c") {
				hl := subscriber.Segment("hl_segment")
				if hl == nil {
					continue
				}
				childCode := hl.Get("hierarchical_child_code")
				if childCode == "1" &&
					len(subscriber.LoopList("loop_2000d")) == 0 {
					out = append(out, Diagnostic{
						Severity: SeverityError,
						Kind:     KindTransactionSemantic,
						Code:     CodeHierarchy,
						Message: "Invalid subscriber hierarchy code " +
							childCode + " no dependent record is present",
						Location: Location{
							Segment: hl.Index,
							Path:    hl.Path(),
						},
					})
				}
			}
		}
	}
	return out
}

// x279HLRules builds the hierarchical dispatch rules shared by the 270
// and 271 transactions
func x279HLRules() []*MatchRule {
	return []*MatchRule{
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelInformationSource},
			},
			Target:      "loop_2000a",
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelInformationReceiver},
			},
			Target:      "loop_2000a/loop_2000b",
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelSubscriber},
			},
			Target:         "loop_2000a/loop_2000b/loop_2000c",
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelDependent},
			},
			Target:         "loop_2000a/loop_2000b/loop_2000c/loop_2000d",
			NewInstance:    true,
			SetupHierarchy: true,
		},
	}
}

// x279NameRules routes NM1 segments into the name loop matching the
// active hierarchical loop
func x279NameRules() []*MatchRule {
	return []*MatchRule{
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000a"},
			Target:    "loop_2000a/loop_2100a",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000b"},
			Target:    "loop_2000a/loop_2000b/loop_2100b",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000c"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2100c",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000d"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d",
		},
	}
}

func x270Spec() *TransactionSpec {
	loop2110c := &LoopSpec{
		Name:        "loop_2110c",
		Description: "Subscriber Eligibility",
		Usage:       Situational,
		Segments: []*SegmentSlot{
			Slot(eqSegment, Situational),
			RepeatSlot(amtSegment, Situational, 0, 2),
			Slot(iiiSegment, Situational),
			Slot(refSegment, Situational),
			Slot(dtpSegment, Situational),
		},
		Validators: []LoopValidator{validateDuplicateAmtCodes},
	}
	loop2100c := &LoopSpec{
		Name:        "loop_2100c",
		Description: "Subscriber Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("IL"), Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(prvSegment, Situational),
			Slot(dmgSegment, Situational),
			Slot(insSegment, Situational),
			Slot(hiSegment, Situational),
			Slot(dtpSegment, Situational),
		},
		Loops:      []*LoopSpec{loop2110c},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2110d := &LoopSpec{
		Name:        "loop_2110d",
		Description: "Dependent Eligibility",
		Usage:       Situational,
		Segments: []*SegmentSlot{
			Slot(eqSegment, Situational),
			RepeatSlot(amtSegment, Situational, 0, 2),
			Slot(iiiSegment, Situational),
			Slot(refSegment, Situational),
			Slot(dtpSegment, Situational),
		},
		Validators: []LoopValidator{validateDuplicateAmtCodes},
	}
	loop2100d := &LoopSpec{
		Name:        "loop_2100d",
		Description: "Dependent Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("03", "QC"), Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(prvSegment, Situational),
			Slot(dmgSegment, Situational),
			Slot(insSegment, Situational),
			Slot(hiSegment, Situational),
			Slot(dtpSegment, Situational),
		},
		Loops:      []*LoopSpec{loop2110d},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2000d := &LoopSpec{
		Name:        "loop_2000d",
		Description: "Dependent",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelDependent, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 2),
		},
		Loops: []*LoopSpec{loop2100d},
	}
	loop2000c := &LoopSpec{
		Name:        "loop_2000c",
		Description: "Subscriber",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelSubscriber, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 2),
		},
		Loops: []*LoopSpec{loop2100c, loop2000d},
	}
	loop2100b := &LoopSpec{
		Name:        "loop_2100b",
		Description: "Information Receiver Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("1P", "2B", "80", "FA", "GP", "P5", "PR"), Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(prvSegment, Situational),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2000b := &LoopSpec{
		Name:        "loop_2000b",
		Description: "Information Receiver",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationReceiver, false), Required),
		},
		Loops: []*LoopSpec{loop2100b, loop2000c},
	}
	loop2100a := &LoopSpec{
		Name:        "loop_2100a",
		Description: "Information Source Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(
				Override(
					nm1Override("2B", "36", "GP", "P5", "PR"),
					SegmentOverride{
						Fields: map[string]FieldOverride{
							"identification_code_qualifier": {
								Usage: Required,
								ValidCodes: []string{
									"24", "46", "FI", "NI", "PI", "XV", "XX",
								},
							},
							"identification_code": {Usage: Required},
						},
					},
				),
				Required,
			),
		},
	}
	loop2000a := &LoopSpec{
		Name:        "loop_2000a",
		Description: "Information Source",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationSource, true), Required),
		},
		Loops: []*LoopSpec{loop2100a, loop2000b},
	}

	bht := Override(bhtSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"hierarchical_structure_code":        {Literal: "0022"},
			"transaction_set_purpose_code":       {ValidCodes: []string{"01", "13"}},
			"submitter_transactional_identifier": {Usage: Required},
		},
	})

	rules := x279HLRules()
	rules = append(rules, x279NameRules()...)
	rules = append(rules,
		&MatchRule{
			SegmentID: "EQ",
			Context:   []string{"loop_2100c"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2100c/loop_2110c",
		},
		&MatchRule{
			SegmentID: "EQ",
			Context:   []string{"loop_2100d"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d/loop_2110d",
		},
	)

	return &TransactionSpec{
		Key:             "270-" + versionX279,
		TransactionCode: "270",
		Version:         versionX279,
		Header: headerLoop(
			"270", versionX279,
			Slot(bht, Required),
		),
		Loops:  []*LoopSpec{loop2000a},
		Footer: footerLoop(),
		Rules:  rules,
		Validators: []TransactionValidator{
			x270SubscriberName,
			x270SubscriberChildCode,
		},
	}
}

func x271Spec() *TransactionSpec {
	benefitLoop := func(suffix string) (*LoopSpec, *LoopSpec) {
		related := &LoopSpec{
			Name:        "loop_2120" + suffix,
			Description: "Benefit Related Entity",
			Usage:       Situational,
			RepeatMin:   1,
			RepeatMax:   23,
			Segments: []*SegmentSlot{
				Slot(nm1Segment, Required),
				Slot(n3Segment, Situational),
				Slot(n4Segment, Situational),
				RepeatSlot(perSegment, Situational, 0, 3),
				Slot(prvSegment, Situational),
			},
		}
		benefit := &LoopSpec{
			Name:        "loop_2110" + suffix,
			Description: "Eligibility or Benefit Information",
			Usage:       Situational,
			RepeatMin:   1,
			Segments: []*SegmentSlot{
				Slot(ebSegment, Required),
				RepeatSlot(hsdSegment, Situational, 0, 9),
				RepeatSlot(refSegment, Situational, 0, 9),
				RepeatSlot(dtpSegment, Situational, 0, 20),
				RepeatSlot(aaaSegment, Situational, 0, 9),
				RepeatSlot(msgSegment, Situational, 0, 10),
				RepeatSlot(iiiSegment, Situational, 0, 10),
				Slot(lsSegment, Situational),
				Slot(leSegment, Situational),
			},
			Loops: []*LoopSpec{related},
			Validators: []LoopValidator{
				validateDuplicateRefCodes,
				validateDuplicateDateQualifiers,
			},
		}
		return benefit, related
	}

	loop2110c, _ := benefitLoop("c")
	loop2110d, _ := benefitLoop("d")

	nameLoop := func(
		suffix string,
		nm1Spec *SegmentSpec,
		benefit *LoopSpec,
	) *LoopSpec {
		return &LoopSpec{
			Name:  "loop_2100" + suffix,
			Usage: Required,
			Segments: []*SegmentSlot{
				Slot(nm1Spec, Required),
				RepeatSlot(refSegment, Situational, 0, 9),
				Slot(n3Segment, Situational),
				Slot(n4Segment, Situational),
				RepeatSlot(aaaSegment, Situational, 0, 9),
				Slot(prvSegment, Situational),
				Slot(dmgSegment, Situational),
				Slot(insSegment, Situational),
				Slot(hiSegment, Situational),
				RepeatSlot(dtpSegment, Situational, 0, 9),
			},
			Loops:      []*LoopSpec{benefit},
			Validators: []LoopValidator{validateDuplicateRefCodes},
		}
	}

	loop2100c := nameLoop("c", nm1Override("IL", "QC"), loop2110c)
	loop2100d := nameLoop("d", nm1Override("03", "QC"), loop2110d)

	loop2000d := &LoopSpec{
		Name:      "loop_2000d",
		Usage:     Situational,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelDependent, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 3),
		},
		Loops: []*LoopSpec{loop2100d},
	}
	loop2000c := &LoopSpec{
		Name:      "loop_2000c",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelSubscriber, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 3),
		},
		Loops: []*LoopSpec{loop2100c, loop2000d},
	}
	loop2100b := &LoopSpec{
		Name:  "loop_2100b",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("1P", "2B", "80", "FA", "GP", "P5", "PR"), Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(aaaSegment, Situational, 0, 9),
			Slot(prvSegment, Situational),
		},
		Validators: []LoopValidator{validateDuplicateRefCodes},
	}
	loop2000b := &LoopSpec{
		Name:      "loop_2000b",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationReceiver, false), Required),
		},
		Loops: []*LoopSpec{loop2100b, loop2000c},
	}
	loop2100a := &LoopSpec{
		Name:  "loop_2100a",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("2B", "36", "GP", "P5", "PR"), Required),
			RepeatSlot(perSegment, Situational, 0, 3),
			RepeatSlot(aaaSegment, Situational, 0, 9),
		},
	}
	loop2000a := &LoopSpec{
		Name:      "loop_2000a",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationSource, true), Required),
			RepeatSlot(aaaSegment, Situational, 0, 9),
		},
		Loops: []*LoopSpec{loop2100a, loop2000b},
	}

	bht := Override(bhtSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"hierarchical_structure_code":  {Literal: "0022"},
			"transaction_set_purpose_code": {Literal: "11"},
		},
	})

	rules := x279HLRules()
	rules = append(rules, x279NameRules()...)
	rules = append(rules,
		&MatchRule{
			SegmentID: "NM1",
			Context:   []string{"loop_2110c", "loop_2120c"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2100c/loop_2110c/loop_2120c",
		},
		&MatchRule{
			SegmentID: "NM1",
			Context:   []string{"loop_2110d", "loop_2120d"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d/loop_2110d/loop_2120d",
		},
		&MatchRule{
			SegmentID:   "EB",
			Context:     []string{"loop_2100c", "loop_2110c", "loop_2120c"},
			Target:      "loop_2000a/loop_2000b/loop_2000c/loop_2100c/loop_2110c",
			NewInstance: true,
		},
		&MatchRule{
			SegmentID:   "EB",
			Context:     []string{"loop_2100d", "loop_2110d", "loop_2120d"},
			Target:      "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d/loop_2110d",
			NewInstance: true,
		},
		&MatchRule{
			SegmentID: "LE",
			Context:   []string{"loop_2120c"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2100c/loop_2110c",
		},
		&MatchRule{
			SegmentID: "LE",
			Context:   []string{"loop_2120d"},
			Target:    "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2100d/loop_2110d",
		},
	)

	return &TransactionSpec{
		Key:             "271-" + versionX279,
		TransactionCode: "271",
		Version:         versionX279,
		Header: headerLoop(
			"271", versionX279,
			Slot(bht, Required),
		),
		Loops:  []*LoopSpec{loop2000a},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x270Spec())
	RegisterTransaction(x271Spec())
}
