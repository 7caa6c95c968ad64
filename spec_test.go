package x12

import (
	"regexp"
	"testing"
)

func TestOverridePrecedence(t *testing.T) {
	merged := Override(nm1Segment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"entity_identifier_code": {ValidCodes: []string{"PR"}},
			"name_first":             {Usage: NotUsed},
		},
	})

	// the override narrows the targeted fields
	entity := merged.field("entity_identifier_code")
	assertEqual(t, len(entity.ValidCodes), 1)
	assertEqual(t, entity.ValidCodes[0], "PR")
	assertEqual(t, merged.field("name_first").Usage, NotUsed)

	// untouched fields keep the base schema
	assertEqual(t, merged.field("name_last_or_organization_name").MaxLength, 60)

	// the base spec is not modified
	assertEqual(t, len(nm1Segment.field("entity_identifier_code").ValidCodes), 0)
	assertEqual(t, nm1Segment.field("name_first").Usage, Situational)

	// base validators carry over
	assertEqual(t, len(merged.Validators), len(nm1Segment.Validators))
}

func TestOverrideLiteral(t *testing.T) {
	merged := Override(stSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"transaction_set_identifier_code": {Literal: "270"},
		},
	})
	f := merged.field("transaction_set_identifier_code")
	assertEqual(t, len(f.ValidCodes), 1)
	assertEqual(t, f.ValidCodes[0], "270")
	assertEqual(t, f.Usage, Required)
}

func TestOverridePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^\d+$`)
	merged := Override(refSegment, SegmentOverride{
		Fields: map[string]FieldOverride{
			"reference_identification": {Pattern: pattern},
		},
	})
	assertEqual(t, merged.field("reference_identification").Pattern, pattern)
	if refSegment.field("reference_identification").Pattern != nil {
		t.Error("expected the base pattern to remain nil")
	}
}

func TestSegmentKey(t *testing.T) {
	assertEqual(t, segmentKey("NM1"), "nm1_segment")
	assertEqual(t, segmentKey("HL"), "hl_segment")
}

func TestSlotRepeats(t *testing.T) {
	single := Slot(nm1Segment, Required)
	assertEqual(t, single.Repeats(), false)

	bounded := RepeatSlot(refSegment, Situational, 0, 9)
	assertEqual(t, bounded.Repeats(), true)

	unbounded := RepeatSlot(dtpSegment, Situational, 1, 0)
	assertEqual(t, unbounded.Repeats(), true)
}

func TestLoopSpecPaths(t *testing.T) {
	spec := findTransactionSpec("270", versionX279)
	assertNotNil(t, spec)

	subscriber := spec.loopAt("loop_2000a/loop_2000b/loop_2000c")
	assertNotNil(t, subscriber)
	assertEqual(t, subscriber.Name, "loop_2000c")
	assertEqual(t, subscriber.Path(), "loop_2000a/loop_2000b/loop_2000c")

	header := spec.loopAt(headerLoopName)
	assertNotNil(t, header)
	assertEqual(t, header.slot("st_segment").Spec.ID, stSegmentId)
}

func TestFieldSpecLookup(t *testing.T) {
	assertEqual(t, hlSegment.fieldIndex("hierarchical_level_code"), 2)
	assertEqual(t, hlSegment.fieldIndex("missing_field"), -1)
	assertNotNil(t, hlSegment.field("hierarchical_id_number"))
	if hlSegment.field("missing_field") != nil {
		t.Error("expected nil for an unknown field")
	}
}

func TestDataTypeNames(t *testing.T) {
	assertEqual(t, Numeric.String(), "N")
	assertEqual(t, Decimal.String(), "R")
	assertEqual(t, Identifier.String(), "ID")
	assertEqual(t, Date.String(), "DT")
	assertEqual(t, Time.String(), "TM")
	assertEqual(t, String.String(), "AN")
}
