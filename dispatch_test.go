package x12

import (
	"strings"
	"testing"
)

func testSegment(spec *SegmentSpec, raw ...string) *SegmentRecord {
	return &SegmentRecord{ID: raw[0], Spec: spec, Raw: raw}
}

func TestMatchRuleConditions(t *testing.T) {
	rule := &MatchRule{
		SegmentID: hlSegmentId,
		Conditions: map[string][]string{
			"hierarchical_level_code": {"20"},
		},
		Target: "loop_2000a",
	}

	match := testSegment(hlSegment, "HL", "1", "", "20", "1")
	noMatch := testSegment(hlSegment, "HL", "2", "1", "21", "1")

	assertEqual(t, rule.matches(match, "", ""), true)
	assertEqual(t, rule.matches(noMatch, "", ""), false)
}

func TestMatchRuleOneOfConditions(t *testing.T) {
	rule := &MatchRule{
		SegmentID: "NM1",
		Conditions: map[string][]string{
			"entity_identifier_code": {"1P", "2B", "FA"},
		},
		Target: "loop_2100b",
	}
	for _, code := range []string{"1P", "2B", "FA"} {
		seg := testSegment(nm1Segment, "NM1", code, "2", "CLINIC")
		assertEqual(t, rule.matches(seg, "", ""), true)
	}
	other := testSegment(nm1Segment, "NM1", "PR", "2", "PAYER")
	assertEqual(t, rule.matches(other, "", ""), false)
}

func TestMatchRuleContext(t *testing.T) {
	rule := &MatchRule{
		SegmentID: "NM1",
		Context:   []string{"loop_2000c"},
		Target:    "loop_2100c",
	}
	seg := testSegment(nm1Segment, "NM1", "IL", "1", "SMITH")
	assertEqual(t, rule.matches(seg, "loop_2000c", "a/loop_2000c"), true)
	assertEqual(t, rule.matches(seg, "loop_2000b", "a/loop_2000b"), false)
}

func TestMatchRuleContextPathSuffix(t *testing.T) {
	rule := &MatchRule{
		SegmentID: "LX",
		Context:   []string{"loop_2000c/loop_2300"},
		Target:    "loop_2000c/loop_2300/loop_2400",
	}
	seg := testSegment(lxSegment, "LX", "1")
	assertEqual(
		t,
		rule.matches(seg, "loop_2300", "loop_2000a/loop_2000c/loop_2300"),
		true,
	)
	assertEqual(
		t,
		rule.matches(seg, "loop_2300", "loop_2000a/loop_2000b/loop_2300"),
		false,
	)
}

func TestMatchRulesFirstMatchWins(t *testing.T) {
	spec := findTransactionSpec("820", versionX218)
	assertNotNil(t, spec)

	individual := testSegment(
		entSegment, "ENT", "1", "2J", "34", "123456789",
	)
	rule := spec.match(individual, "", "")
	assertNotNil(t, rule)
	assertEqual(t, rule.Target, "loop_2000b")

	organization := testSegment(entSegment, "ENT", "1")
	rule = spec.match(organization, "", "")
	assertNotNil(t, rule)
	assertEqual(t, rule.Target, "loop_2000a")
}

func TestDuplicateDispatchRulesRejected(t *testing.T) {
	spec := &TransactionSpec{
		Key:             "test-dupes",
		TransactionCode: "270",
		Version:         "TEST",
		Header:          headerLoop("270", "TEST"),
		Footer:          footerLoop(),
		Loops: []*LoopSpec{
			{
				Name:  "loop_a",
				Usage: Required,
				Segments: []*SegmentSlot{
					Slot(hlSegment, Required),
				},
			},
		},
		Rules: []*MatchRule{
			{
				SegmentID: hlSegmentId,
				Conditions: map[string][]string{
					"hierarchical_level_code": {"20"},
				},
				Target: "loop_a",
			},
			{
				SegmentID: hlSegmentId,
				Conditions: map[string][]string{
					"hierarchical_level_code": {"20"},
				},
				Target: "loop_a",
			},
		},
	}
	err := spec.Validate()
	assertErrorNotNil(t, err)
	if !strings.Contains(err.Error(), "duplicate dispatch rule") {
		t.Errorf("expected a duplicate rule error, got: %v", err)
	}
}

func TestRuleTargetMustExist(t *testing.T) {
	spec := &TransactionSpec{
		Key:             "test-target",
		TransactionCode: "270",
		Version:         "TEST",
		Header:          headerLoop("270", "TEST"),
		Footer:          footerLoop(),
		Rules: []*MatchRule{
			{SegmentID: hlSegmentId, Target: "loop_nowhere"},
		},
	}
	err := spec.Validate()
	assertErrorNotNil(t, err)
	if !strings.Contains(err.Error(), "unknown loop path") {
		t.Errorf("expected an unknown target error, got: %v", err)
	}
}

func TestSupportedTransactions(t *testing.T) {
	supported := SupportedTransactions()
	for _, key := range []string{
		"270-005010X279A1",
		"271-005010X279A1",
		"276-005010X212",
		"277-005010X212",
		"278-005010X217",
		"820-005010X218",
		"834-005010X220A1",
		"835-005010X221A1",
		"837-005010X222A2",
		"837-005010X223A3",
		"837-005010X224A2",
	} {
		assertSliceContains(t, supported, key)
	}
}

func TestFindTransactionSpec(t *testing.T) {
	spec := findTransactionSpec("270", versionX279)
	assertNotNil(t, spec)
	assertEqual(t, spec.TransactionCode, "270")

	missing := findTransactionSpec("270", "004010X092")
	if missing != nil {
		t.Fatalf("expected nil for an unsupported version")
	}
}
