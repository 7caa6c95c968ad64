package x12

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestModelPayload(t *testing.T) {
	model := singleModel(t, x270Message(t))
	payload := model.Payload()

	header, ok := payload[headerLoopName].(map[string]any)
	if !ok {
		t.Fatalf("expected a header map, got %T", payload[headerLoopName])
	}
	st, ok := header["st_segment"].(map[string]any)
	if !ok {
		t.Fatalf("expected an st_segment map, got %T", header["st_segment"])
	}
	assertEqual(t, st["transaction_set_identifier_code"].(string), "270")

	sources, ok := payload["loop_2000a"].([]map[string]any)
	if !ok {
		t.Fatalf("expected a loop list, got %T", payload["loop_2000a"])
	}
	assertEqual(t, len(sources), 1)
}

func TestModelJSONExcludeEmpty(t *testing.T) {
	model := singleModel(t, x270Message(t))

	full, err := model.JSON(false)
	assertNoError(t, err)
	trimmed, err := model.JSON(true)
	assertNoError(t, err)

	if len(trimmed) >= len(full) {
		t.Errorf(
			"expected exclude-empty output to be smaller (%d >= %d)",
			len(trimmed),
			len(full),
		)
	}

	var decoded map[string]any
	assertNoError(t, json.Unmarshal(trimmed, &decoded))
	if _, ok := decoded[headerLoopName]; !ok {
		t.Error("expected the header to survive exclude-empty output")
	}

	// empty optional name fields are dropped
	if strings.Contains(string(trimmed), `"name_middle": ""`) {
		t.Error("expected empty fields to be removed")
	}
}

func TestSegmentRecordAccessors(t *testing.T) {
	model := singleModel(t, x270Message(t))
	subscriber := model.Root().
		LoopList("loop_2000a")[0].
		LoopList("loop_2000b")[0].
		LoopList("loop_2000c")[0]

	hl := subscriber.Segment("hl_segment")
	assertEqual(t, hl.Get("hierarchical_level_code"), "22")
	assertEqual(t, hl.Get("no_such_field"), "")

	trns := subscriber.SegmentList("trn_segment")
	assertEqual(t, len(trns), 1)
	assertEqual(t, trns[0].Get("reference_identification_1"), "93175-012547")
}

func TestParseDateFormats(t *testing.T) {
	long, err := parseDate("20200929")
	assertNoError(t, err)
	assertEqual(t, long.Year(), 2020)

	short, err := parseDate("200929")
	assertNoError(t, err)
	assertEqual(t, short.Year(), 2020)

	zero, err := parseDate("")
	assertNoError(t, err)
	assertEqual(t, zero, time.Time{})

	_, err = parseDate("2020")
	assertErrorNotNil(t, err)
}

func TestParseTimeFormats(t *testing.T) {
	hm, err := parseTime("1319")
	assertNoError(t, err)
	assertEqual(t, hm.Hour(), 13)
	assertEqual(t, hm.Minute(), 19)

	hms, err := parseTime("131905")
	assertNoError(t, err)
	assertEqual(t, hms.Second(), 5)

	hmsd, err := parseTime("13190599")
	assertNoError(t, err)
	assertEqual(t, hmsd.Hour(), 13)

	_, err = parseTime("13")
	assertErrorNotNil(t, err)
}

func TestRemoveEmptyOrZero(t *testing.T) {
	payload := map[string]any{
		"keep":   "value",
		"empty":  "",
		"nested": map[string]any{"inner": ""},
		"list":   []map[string]any{{"a": "", "b": "x"}},
		"none":   nil,
	}
	removeEmptyOrZero(payload)

	assertEqual(t, payload["keep"].(string), "value")
	if _, ok := payload["empty"]; ok {
		t.Error("expected empty string to be removed")
	}
	if _, ok := payload["nested"]; ok {
		t.Error("expected empty nested map to be removed")
	}
	if _, ok := payload["none"]; ok {
		t.Error("expected nil value to be removed")
	}
	list := payload["list"].([]map[string]any)
	if _, ok := list[0]["a"]; ok {
		t.Error("expected empty list entry field to be removed")
	}
}
