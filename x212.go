package x12

// 005010X212 claim status: the 276 request and 277 response
// transaction sets.
//
//   header
//   loop_2000a (information source)   HL03 = 20
//     loop_2100a (payer name)
//     loop_2000b (information receiver)   HL03 = 21
//       loop_2100b (information receiver name)
//       loop_2000c (service provider)   HL03 = 19
//         loop_2100c (provider name)
//         loop_2000d (subscriber)   HL03 = 22
//           loop_2100d (subscriber name)
//           loop_2200d (claim status tracking)
//             loop_2210d (service line)
//           loop_2000e (dependent)   HL03 = 23
//             loop_2100e (dependent name)
//             loop_2200e (claim status tracking)
//               loop_2210e (service line)
//   footer

const (
	versionX212            = "005010X212"
	hlLevelServiceProvider = "19"
)

// x212Paths holds the fully-qualified loop paths shared by the 276
// and 277 definitions
var x212Paths = struct {
	source, receiver, provider, subscriber, dependent string
}{
	source:     "loop_2000a",
	receiver:   "loop_2000a/loop_2000b",
	provider:   "loop_2000a/loop_2000b/loop_2000c",
	subscriber: "loop_2000a/loop_2000b/loop_2000c/loop_2000d",
	dependent:  "loop_2000a/loop_2000b/loop_2000c/loop_2000d/loop_2000e",
}

// x212Spec builds a claim status transaction definition. The request
// and response share their loop hierarchy; the response adds STC
// status slots to the tracking and service line loops.
func x212Spec(code string, response bool) *TransactionSpec {
	trackingLoop := func(suffix string) *LoopSpec {
		serviceSegments := []*SegmentSlot{
			Slot(svcSegment, Required),
		}
		if response {
			serviceSegments = append(
				serviceSegments,
				RepeatSlot(stcSegment, Situational, 0, 0),
			)
		}
		serviceSegments = append(
			serviceSegments,
			Slot(refSegment, Situational),
			Slot(dtpSegment, Situational),
		)
		serviceLine := &LoopSpec{
			Name:      "loop_2210" + suffix,
			Usage:     Situational,
			RepeatMin: 1,
			Segments:  serviceSegments,
		}

		trackingSegments := []*SegmentSlot{
			Slot(trnSegment, Required),
		}
		if response {
			trackingSegments = append(
				trackingSegments,
				RepeatSlot(stcSegment, Required, 1, 0),
			)
		}
		trackingSegments = append(
			trackingSegments,
			RepeatSlot(refSegment, Situational, 0, 9),
			RepeatSlot(amtSegment, Situational, 0, 2),
			RepeatSlot(dtpSegment, Situational, 0, 2),
		)
		return &LoopSpec{
			Name:      "loop_2200" + suffix,
			Usage:     Required,
			RepeatMin: 1,
			Segments:  trackingSegments,
			Loops:     []*LoopSpec{serviceLine},
			Validators: []LoopValidator{
				validateDuplicateRefCodes,
				validateDuplicateAmtCodes,
			},
		}
	}

	loop2200e := trackingLoop("e")
	loop2100e := &LoopSpec{
		Name:  "loop_2100e",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("QC"), Required),
		},
	}
	loop2000e := &LoopSpec{
		Name:      "loop_2000e",
		Usage:     Situational,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelDependent, false), Required),
			Slot(dmgSegment, Situational),
		},
		Loops: []*LoopSpec{loop2100e, loop2200e},
	}

	loop2200d := trackingLoop("d")
	loop2100d := &LoopSpec{
		Name:  "loop_2100d",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("IL"), Required),
		},
	}
	loop2000d := &LoopSpec{
		Name:      "loop_2000d",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelSubscriber, false), Required),
			Slot(dmgSegment, Situational),
		},
		Loops: []*LoopSpec{loop2100d, loop2200d, loop2000e},
	}

	loop2100c := &LoopSpec{
		Name:  "loop_2100c",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("1P"), Required),
		},
	}
	loop2000c := &LoopSpec{
		Name:      "loop_2000c",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelServiceProvider, false), Required),
		},
		Loops: []*LoopSpec{loop2100c, loop2000d},
	}

	loop2100b := &LoopSpec{
		Name:  "loop_2100b",
		Usage: Required,
		Segments: []*SegmentSlot{
			Slot(nm1Override("41"), Required),
		},
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
			Slot(nm1Override("PR"), Required),
		},
	}
	loop2000a := &LoopSpec{
		Name:      "loop_2000a",
		Usage:     Required,
		RepeatMin: 1,
		Segments: []*SegmentSlot{
			Slot(hlOverride(hlLevelInformationSource, true), Required),
		},
		Loops: []*LoopSpec{loop2100a, loop2000b},
	}

	bht := Override(bhtSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"hierarchical_structure_code":  {Literal: "0010"},
			"transaction_set_purpose_code": {Literal: "13"},
		},
	})
	if response {
		bht = Override(bhtSegment, SegmentOverride{
			Fields: map[string]FieldOverride{
				"hierarchical_structure_code":  {Literal: "0010"},
				"transaction_set_purpose_code": {Literal: "08"},
				"transaction_type_code":        {ValidCodes: []string{"DG"}},
			},
		})
	}

	rules := []*MatchRule{
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelInformationSource},
			},
			Target:      x212Paths.source,
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelInformationReceiver},
			},
			Target:      x212Paths.receiver,
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelServiceProvider},
			},
			Target:      x212Paths.provider,
			NewInstance: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelSubscriber},
			},
			Target:         x212Paths.subscriber,
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: hlSegmentId,
			Conditions: map[string][]string{
				"hierarchical_level_code": {hlLevelDependent},
			},
			Target:         x212Paths.dependent,
			NewInstance:    true,
			SetupHierarchy: true,
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"PR"},
			},
			Target: x212Paths.source + "/loop_2100a",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"41"},
			},
			Target: x212Paths.receiver + "/loop_2100b",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"1P"},
			},
			Target: x212Paths.provider + "/loop_2100c",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"IL"},
			},
			Target: x212Paths.subscriber + "/loop_2100d",
		},
		{
			SegmentID: "NM1",
			Conditions: map[string][]string{
				"entity_identifier_code": {"QC"},
			},
			Target: x212Paths.dependent + "/loop_2100e",
		},
		{
			SegmentID: "TRN",
			Context: []string{
				"loop_2100d", "loop_2200d", "loop_2210d",
			},
			Target:      x212Paths.subscriber + "/loop_2200d",
			NewInstance: true,
		},
		{
			SegmentID: "TRN",
			Context: []string{
				"loop_2100e", "loop_2200e", "loop_2210e",
			},
			Target:      x212Paths.dependent + "/loop_2200e",
			NewInstance: true,
		},
		{
			SegmentID: "SVC",
			Context: []string{
				"loop_2200d", "loop_2210d",
			},
			Target:      x212Paths.subscriber + "/loop_2200d/loop_2210d",
			NewInstance: true,
		},
		{
			SegmentID: "SVC",
			Context: []string{
				"loop_2200e", "loop_2210e",
			},
			Target:      x212Paths.dependent + "/loop_2200e/loop_2210e",
			NewInstance: true,
		},
	}

	return &TransactionSpec{
		Key:             code + "-" + versionX212,
		TransactionCode: code,
		Version:         versionX212,
		Header: headerLoop(
			code, versionX212,
			Slot(bht, Required),
		),
		Loops:  []*LoopSpec{loop2000a},
		Footer: footerLoop(),
		Rules:  rules,
	}
}

func init() {
	RegisterTransaction(x212Spec("276", false))
	RegisterTransaction(x212Spec("277", true))
}
