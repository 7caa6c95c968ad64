package x12

// 005010X217 services review: the 278 health care services review
// request transaction set.
//
//   header
//   loop_2000a (utilization management organization)   HL03 = 20
//     loop_2010a (UMO name)
//     loop_2000b (requester)   HL03 = 21
//       loop_2010b (requester name)
//       loop_2000c (subscriber)   HL03 = 22
//         loop_2010c (subscriber name)
//         loop_2000d (dependent)   HL03 = 23
//           loop_2010d (dependent name)
//         loop_2000e (patient event)   HL03 = EV
//           loop_2010e (event provider name)
//           loop_2000f (service)   HL03 = SS
//   footer

const (
	versionX217       = "005010X217"
	hlLevelEvent      = "EV"
	hlLevelService    = "SS"
	x217SubscriberTop = "loop_2000a/loop_2000b/loop_2000c"
)

func x217Spec() *TransactionSpec {
	nameLoop := func(name string, entityCodes ...string) *LoopSpec {
		return &LoopSpec{
			Name:  name,
			Usage: Required,
			Segments: []*SegmentSlot{
				Slot(nm1Override(entityCodes...), Required),
				RepeatSlot(refSegment, Situational, 0, 9),
				Slot(n3Segment, Situational),
				Slot(n4Segment, Situational),
				Slot(perSegment, Situational),
				Slot(prvSegment, Situational),
				Slot(dmgSegment, Situational),
			},
			Validators: []LoopValidator{validateDuplicateRefCodes},
		}
	}

	loop2000f := &LoopSpec{
		Name:        "loop_2000f",
		Description: "Service Level",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelService, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 3),
			Slot(umSegment, Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			RepeatSlot(dtpSegment, Situational, 0, 9),
			Slot(sv1Segment, Situational),
			Slot(sv2Segment, Situational),
			Slot(hsdSegment, Situational),
		},
		Validators: []LoopValidator{
			validateDuplicateRefCodes,
			validateDuplicateDateQualifiers,
		},
	}
	loop2010e := &LoopSpec{
		Name:        "loop_2010e",
		Description: "Patient Event Provider Name",
		Usage:       Situational,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(nm1Segment, Required),
			RepeatSlot(refSegment, Situational, 0, 9),
			Slot(n3Segment, Situational),
			Slot(n4Segment, Situational),
			Slot(perSegment, Situational),
			Slot(prvSegment, Situational),
		},
	}
	loop2000e := &LoopSpec{
		Name:        "loop_2000e",
		Description: "Patient Event Level",
		Usage:       Required,
		RepeatMin:   1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelEvent, false), Required),
			RepeatSlot(trnSegment, Situational, 0, 3),
			Slot(umSegment, Required),
			Slot(hcrSegment, Situational),
			RepeatSlot(refSegment, Situational, 0, 9),
			RepeatSlot(dtpSegment, Situational, 0, 9),
			Slot(hiSegment, Situational),
			Slot(cl1Segment, Situational),
			RepeatSlot(msgSegment, Situational, 0, 10),
		},
		Loops: []*LoopSpec{loop2010e, loop2000f},
		Validators: []LoopValidator{
			validateDuplicateRefCodes,
			validateDuplicateDateQualifiers,
		},
	}

	loop2010d := nameLoop("loop_2010d", "QC")
	loop2000d := &LoopSpec{
		Name:      "loop_2000d",
		Usage:     Situational,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelDependent, false), Required),
		},
		Loops: []*LoopSpec{loop2010d},
	}

	loop2010c := nameLoop("loop_2010c", "IL")
	loop2000c := &LoopSpec{
		Name:      "loop_2000c",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelSubscriber, false), Required),
		},
		Loops: []*LoopSpec{loop2010c, loop2000d, loop2000e},
	}

	loop2010b := nameLoop("loop_2010b", "1P", "FA")
	loop2000b := &LoopSpec{
		Name:      "loop_2000b",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationReceiver, false), Required),
		},
		Loops: []*LoopSpec{loop2010b, loop2000c},
	}

	loop2010a := nameLoop("loop_2010a", "X3")
	loop2000a := &LoopSpec{
		Name:      "loop_2000a",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationSource, true), Required),
			RepeatSlot(aaaSegment, Situational, 0, 9),
		},
		Loops: []*LoopSpec{loop2010a, loop2000b},
	}

	bht := Override(bhtSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"hierarchical_structure_code":  {Literal: "0007"},
			"transaction_set_purpose_code": {Literal: "13"},
			"transaction_type_code":        {ValidCodes: []string{"RT", "RU"}},
		},
	})

	rules := []*MatchRule{
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
			Target:         x217SubscriberTop,
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelDependent},
			},
			Target:         x217SubscriberTop + "/loop_2000d",
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelEvent},
			},
			Target:      x217SubscriberTop + "/loop_2000e",
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelService},
			},
			Target:      x217SubscriberTop + "/loop_2000e/loop_2000f",
			NewInstance: true,
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000a"},
			Target:    "loop_2000a/loop_2010a",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000b"},
			Target:    "loop_2000a/loop_2000b/loop_2010b",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000c"},
			Target:    x217SubscriberTop + "/loop_2010c",
		},
		{
			SegmentID: "NM1",
			Context:   []string{"loop_2000d"},
			Target:    x217SubscriberTop + "/loop_2000d/loop_2010d",
		},
		{
			SegmentID:   "NM1",
			Context:     []string{"loop_2000e", "loop_2010e"},
			Target:      x217SubscriberTop + "/loop_2000e/loop_2010e",
			NewInstance: true,
		},
	}

	return &TransactionSpec{
		Key:             "278-" + versionX217,
		TransactionCode: "278",
		Version:         versionX217,
		Header: headerLoop(
			"278", versionX217,
			Slot(bht, Required),
		),
		Loops:  []*LoopSpec{loop2000a},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x217Spec())
}
