package x12

import (
	"os"
	"strings"
	"testing"
)

// assertEqual fails the test if the two values are not equal
func assertEqual[V comparable](t *testing.T, val V, expected V) {
	t.Helper()
	if val != expected {
		t.Errorf("expected:\n%#v\n\ngot:\n%#v", expected, val)
	}
}

// assertNoError fails the test immediately if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

// assertErrorNotNil fails the test immediately if err is nil
func assertErrorNotNil(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// assertNotNil fails the test immediately on a nil value
func assertNotNil(t *testing.T, val any) {
	t.Helper()
	if val == nil {
		t.Fatalf("expected non-nil value, got nil")
	}
}

// assertSliceContains fails the test if the expected value is not in
// the slice
func assertSliceContains[V comparable](t *testing.T, row []V, expected V) {
	t.Helper()
	if !sliceContains(row, expected) {
		t.Errorf("expected %v to be in slice %v", expected, row)
	}
}

// replaceNewlines strips `\r` and `\n` from the given text, so test
// fixtures can remain human-readable (one segment per line) without
// the newlines being part of the message
func replaceNewlines(t *testing.T, text []byte) string {
	t.Helper()
	replacer := strings.NewReplacer("\r\n", "", "\r", "", "\n", "")
	return replacer.Replace(string(text))
}

// readFixture loads a file from testdata
func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	assertNoError(t, err)
	return data
}

// x270Message is a 17-segment eligibility inquiry (subscriber only)
// with a valid envelope
func x270Message(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "270.txt")
}

// x270MessageMixedEntity is x270Message with a person name field set
// on the organizational information source NM1
func x270MessageMixedEntity(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "270_mixed_entity.txt")
}

// x270MessageDuplicateRef carries a dependent loop with two REF
// segments using the same qualifier code
func x270MessageDuplicateRef(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "270_duplicate_ref.txt")
}

// x270MessageSegmentCount is x270Message with SE01 off by one
func x270MessageSegmentCount(t *testing.T) []byte {
	t.Helper()
	return readFixture(t, "270_segment_count.txt")
}

// parseModels parses the given message and fails the test on a fatal
// error
func parseModels(t *testing.T, message []byte) []*TransactionModel {
	t.Helper()
	models, err := Models(strings.NewReader(string(message)))
	assertNoError(t, err)
	return models
}

// singleModel parses the given message, expecting exactly one
// transaction model
func singleModel(t *testing.T, message []byte) *TransactionModel {
	t.Helper()
	models := parseModels(t, message)
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
	return models[0]
}

// diagnosticsWithCode filters diagnostics by code
func diagnosticsWithCode(ds Diagnostics, code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
