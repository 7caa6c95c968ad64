package x12

// Shared construction helpers for the per-transaction definitions.
// Each supported (transaction code, implementation version) pair
// registers a TransactionSpec from its own file; the header and footer
// pseudo-loops are identical across transactions apart from the ST
// literals and the segments following ST.

// headerLoop builds the header pseudo-loop: an ST segment constrained
// to the transaction's code and implementation convention, followed by
// the given segment slots (BHT, BPR, BGN, ...).
func headerLoop(
	code string,
	version string,
	slots ...*SegmentSlot,
) *LoopSpec {
	// ST03 may be omitted when GS08 carries the implementation
	// convention, so it stays situational but is pinned when present
	st := Slot(
		Override(stSegment, SegmentOverride{
			Fields: map[string]FieldOverride{
				"transaction_set_identifier_code":     {Literal: code},
				"implementation_convention_reference": {Usage: Situational, ValidCodes: []string{version}},
			},
		}),
		Required,
	)
	return &LoopSpec{
		Name:     headerLoopName,
		Usage:    Required,
		Segments: append([]*SegmentSlot{st}, slots...),
	}
}

// footerLoop builds the footer pseudo-loop: the given segment slots
// (PLB for the 835, for example) followed by the SE trailer
func footerLoop(slots ...*SegmentSlot) *LoopSpec {
	return &LoopSpec{
		Name:     footerLoopName,
		Usage:    Required,
		Segments: append(slots, Slot(seSegment, Required)),
	}
}

// hlOverride constrains an HL segment to a specific level code, with
// the parent id required or excluded depending on the level's position
// in the hierarchy
func hlOverride(levelCode string, root bool) *SegmentSpec {
	fields := map[string]FieldOverride{
		"hierarchical_level_code": {Literal: levelCode},
	}
	if root {
		fields["hierarchical_parent_id_number"] = FieldOverride{Usage: NotUsed}
	} else {
		fields["hierarchical_parent_id_number"] = FieldOverride{Usage: Required}
	}
	return Override(hlSegment, SegmentOverride{Fields: fields})
}

// nm1Override constrains an NM1 segment to a loop-local entity
// identifier code table
func nm1Override(entityCodes ...string) *SegmentSpec {
	return Override(nm1Segment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"entity_identifier_code": {ValidCodes: entityCodes},
		},
	})
}
