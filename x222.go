package x12

// 005010X222 professional claim: the 837 health care claim
// transaction set. The institutional (005010X223) and dental
// (005010X224) variants share the loop hierarchy and differ in their
// service line segments; see x223.go and x224.go.
//
//   header (ST, BHT)
//   loop_1000a (submitter name)
//   loop_1000b (receiver name)
//   loop_2000a (billing provider)   HL03 = 20
//     loop_2010aa (billing provider name)
//     loop_2010ab (pay-to address)
//     loop_2000b (subscriber)   HL03 = 22
//       loop_2010ba (subscriber name)
//       loop_2010bb (payer name)
//       loop_2300 (claim)
//         loop_2400 (service line)
//       loop_2000c (patient)   HL03 = 23
//         loop_2010ca (patient name)
//         loop_2300 (claim)
//           loop_2400 (service line)
//   footer

const versionX222 = "005010X222A2"

// x837ServiceSlots selects the service line segments for an 837
// variant
type x837ServiceSlots func() []*SegmentSlot

// x837Spec builds an 837 claim transaction definition for the given
// implementation version and service line shape
func x837Spec(version string, serviceSlots x837ServiceSlots) *TransactionSpec {
	claimLoop := func() *LoopSpec {
		loop2330a := &LoopSpec{
			Name:        "loop_2330a",
			Description: "Other Subscriber Name",
			Usage:       Required,
			Segments: []*SegmentSlot{
				Slot(nm1Override("IL", "QC"), Required),
				Slot(n3Segment, Situational),
				Slot(n4Segment, Situational),
				RepeatSlot(refSegment, Situational, 0, 3),
			},
		}
		loop2320 := &LoopSpec{
			Name:        "loop_2320",
			Description: "Other Subscriber Information",
			Usage:       Situational,
			RepeatMin:   1,
			RepeatMax:   10,
			Segments: []*SegmentSlot{
				Slot(sbrSegment, Required),
				RepeatSlot(casSegment, Situational, 0, 5),
				RepeatSlot(amtSegment, Situational, 0, 3),
				Slot(oiSegment, Required),
			},
			Loops:      []*LoopSpec{loop2330a},
			Validators: []LoopValidator{validateDuplicateAmtCodes},
		}
		loop2400 := &LoopSpec{
			Name:        "loop_2400",
			Description: "Service Line",
			Usage:       Required,
			RepeatMin:   1,
			RepeatMax:   50,
			Segments: append(
				[]*SegmentSlot{Slot(lxSegment, Required)},
				append(
					serviceSlots(),
					RepeatSlot(dtpSegment, Situational, 0, 15),
					RepeatSlot(refSegment, Situational, 0, 30),
					RepeatSlot(amtSegment, Situational, 0, 2),
					RepeatSlot(nteSegment, Situational, 0, 2),
				)...,
			),
			Validators: []LoopValidator{validateDuplicateRefCodes},
		}
		return &LoopSpec{
			Name:        "loop_2300",
			Description: "Claim Information",
			Usage:       Situational,
			RepeatMin:   1,
			RepeatMax:   100,
			Segments: []*SegmentSlot{
				Slot(clmSegment, Required),
				RepeatSlot(dtpSegment, Situational, 0, 17),
				RepeatSlot(refSegment, Situational, 0, 30),
				RepeatSlot(k3Segment, Situational, 0, 10),
				Slot(nteSegment, Situational),
				Slot(cn1Segment, Situational),
				RepeatSlot(amtSegment, Situational, 0, 3),
				RepeatSlot(hiSegment, Situational, 0, 4),
				Slot(cl1Segment, Situational),
			},
			Loops:      []*LoopSpec{loop2320, loop2400},
			Validators: []LoopValidator{validateDuplicateRefCodes},
		}
	}

	loop2010ca := &LoopSpec{
		Name:        "loop_2010ca",
		Description: "Patient Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("QC"), Required),
			Slot(n3Segment, Required),
			Slot(n4Segment, Required),
			Slot(dmgSegment, Required),
			RepeatSlot(refSegment, Situational, 0, 2),
		},
	}
	loop2000c := &LoopSpec{
		Name:        "loop_2000c",
		Description: "Patient Hierarchical Level",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelDependent, false), Required),
			Slot(patSegment, Required),
		},
		Loops: []*LoopSpec{loop2010ca, claimLoop()},
	}

	loop2010ba := &LoopSpec{
		Name:        "loop_2010ba",
		Description: "Subscriber Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("IL"), Required),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(dmgSegment, Situational),
			RepeatSlot(refSegment, Situational, 0, 2),
		},
	}
	loop2010bb := &LoopSpec{
		Name:        "loop_2010bb",
		Description: "Payer Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("PR"), Required),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			RepeatSlot(refSegment, Situational, 0, 3),
		},
	}
	loop2000b := &LoopSpec{
		Name:        "loop_2000b",
		Description: "Subscriber Hierarchical Level",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelSubscriber, false), Required),
			Slot(sbrSegment, Required),
			Slot(patSegment, Situational),
		},
		Loops: []*LoopSpec{loop2010ba, loop2010bb, claimLoop(), loop2000c},
	}

	loop2010aa := &LoopSpec{
		Name:        "loop_2010aa",
		Description: "Billing Provider Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("85"), Required),
			Slot(n3Segment, Required),
			Slot(n4Segment, Required),
			RepeatSlot(refSegment, Situational, 0, 3),
			RepeatSlot(perSegment, Situational, 0, 2),
		},
	}
	loop2010ab := &LoopSpec{
		Name:        "loop_2010ab",
		Description: "Pay-To Address",
		Usage:       Situational,
		Segments: []*SegmentSlot{
			Slot(nm1Override("87"), Required),
			Slot(n3Segment, Required),
			Slot(n4Segment, Required),
		},
	}
	loop2000a := &LoopSpec{
		Name:        "loop_2000a",
		Description: "Billing Provider Hierarchical Level",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationSource, true), Required),
			Slot(prvSegment, Situational),
			Slot(curSegment, Situational),
		},
		Loops: []*LoopSpec{loop2010aa, loop2010ab, loop2000b},
	}

	loop1000a := &LoopSpec{
		Name:        "loop_1000a",
		Description: "Submitter Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("41"), Required),
			RepeatSlot(perSegment, Required, 1, 2),
		},
	}
	loop1000b := &LoopSpec{
		Name:        "loop_1000b",
		Description: "Receiver Name",
		Usage:       Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("40"), Required),
		},
	}

	bht := Override(bhtSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"hierarchical_structure_code":        {Literal: "0019"},
			"transaction_set_purpose_code":       {ValidCodes: []string{"00", "18"}},
			"submitter_transactional_identifier": {Usage: Required},
			"transaction_type_code":              {ValidCodes: []string{"31", "CH", "RP"}},
		},
	})

	subscriberPath := "loop_2000a/loop_2000b"
	patientPath := subscriberPath + "/loop_2000c"
	rules := []*MatchRule{
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"41"},
			},
			Context: []string{headerLoopName, "loop_1000a"},
			Target:  "loop_1000a",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"40"},
			},
			Context: []string{"loop_1000a", "loop_1000b"},
			Target:  "loop_1000b",
		},
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
				"hierarchical_level_code": {hlLevelSubscriber},
			},
			Target:         subscriberPath,
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelDependent},
			},
			Target:         patientPath,
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"85"},
			},
			Context: []string{"loop_2000a"},
			Target:  "loop_2000a/loop_2010aa",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"87"},
			},
			Context: []string{"loop_2010aa", "loop_2010ab"},
			Target:  "loop_2000a/loop_2010ab",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"IL"},
			},
			Context: []string{"loop_2000b"},
			Target:  subscriberPath + "/loop_2010ba",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PR"},
			},
			Context: []string{"loop_2010ba", "loop_2010bb"},
			Target:  subscriberPath + "/loop_2010bb",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"QC"},
			},
			Context: []string{"loop_2000c"},
			Target:  patientPath + "/loop_2010ca",
		},
		{
			SegmentID: "CLM",
			Context: []string{
				"loop_2000b", "loop_2010ba", "loop_2010bb",
				subscriberPath + "/loop_2300",
				subscriberPath + "/loop_2300/loop_2400",
			},
			Target:      subscriberPath + "/loop_2300",
			NewInstance: true,
		},
		{
			SegmentID: "CLM",
			Context: []string{
				"loop_2000c", "loop_2010ca",
				patientPath + "/loop_2300",
				patientPath + "/loop_2300/loop_2400",
			},
			Target:      patientPath + "/loop_2300",
			NewInstance: true,
		},
		{
			SegmentID: "LX",
			Context: []string{
				subscriberPath + "/loop_2300",
				subscriberPath + "/loop_2300/loop_2400",
			},
			Target:      subscriberPath + "/loop_2300/loop_2400",
			NewInstance: true,
		},
		{
			SegmentID: "LX",
			Context: []string{
				patientPath + "/loop_2300",
				patientPath + "/loop_2300/loop_2400",
			},
			Target:      patientPath + "/loop_2300/loop_2400",
			NewInstance: true,
		},
		{
			SegmentID: "SBR",
			Context: []string{
				subscriberPath + "/loop_2300",
				subscriberPath + "/loop_2300/loop_2320",
				subscriberPath + "/loop_2300/loop_2320/loop_2330a",
			},
			Target:      subscriberPath + "/loop_2300/loop_2320",
			NewInstance: true,
		},
		{
			SegmentID: "SBR",
			Context: []string{
				patientPath + "/loop_2300",
				patientPath + "/loop_2300/loop_2320",
				patientPath + "/loop_2300/loop_2320/loop_2330a",
			},
			Target:      patientPath + "/loop_2300/loop_2320",
			NewInstance: true,
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"IL", "QC"},
			},
			Context: []string{
				subscriberPath + "/loop_2300/loop_2320",
			},
			Target: subscriberPath + "/loop_2300/loop_2320/loop_2330a",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"IL", "QC"},
			},
			Context: []string{
				patientPath + "/loop_2300/loop_2320",
			},
			Target: patientPath + "/loop_2300/loop_2320/loop_2330a",
		},
	}

	code := "837"
	return &TransactionSpec{
		Key:             code + "-" + version,
		TransactionCode: code,
		Version:         version,
		Header: headerLoop(
			code, version,
			Slot(bht, Required),
		),
		Loops:  []*LoopSpec{loop1000a, loop1000b, loop2000a},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x837Spec(versionX222, func() []*SegmentSlot {
		return []*SegmentSlot{
			Slot(sv1Segment, Required),
		}
	}))
}
