package x12

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDetectDelimiters(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(string(x270Message(t))))
	delims, isa, err := DetectDelimiters(r)
	assertNoError(t, err)

	assertEqual(t, delims.Element, '*')
	assertEqual(t, delims.Repetition, '^')
	assertEqual(t, delims.Component, ':')
	assertEqual(t, delims.Terminator, '~')

	assertEqual(t, isa.ID, isaSegmentId)
	assertEqual(t, len(isa.Fields), isaElementCount)
	// fixed-width fields are emitted untrimmed
	assertEqual(t, isa.Fields[isaIndexAuthInfo], "          ")
	assertEqual(t, isa.Fields[isaIndexControlNumber], "000000907")
	assertEqual(t, isa.Fields[isaIndexUsageIndicator], "T")
}

func TestDetectDelimitersShortInput(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("ISA*00*truncated"))
	_, _, err := DetectDelimiters(r)
	assertErrorNotNil(t, err)

	delimErr := &DelimiterError{}
	if !errors.As(err, &delimErr) {
		t.Fatalf("expected DelimiterError, got %T", err)
	}
}

func TestDetectDelimitersDuplicateSeparators(t *testing.T) {
	message := string(x270Message(t))
	// make the repetition separator collide with the element separator
	isa := []byte(message[:isaByteCount])
	isa[isaRepetitionSeparatorIndex] = '*'
	_, _, err := DetectDelimiters(
		bufio.NewReader(strings.NewReader(string(isa))),
	)
	assertErrorNotNil(t, err)
	if !errors.Is(err, ErrInvalidISA) {
		t.Fatalf("expected ErrInvalidISA, got %v", err)
	}
}

func TestDetectDelimitersAlphanumericSeparator(t *testing.T) {
	message := string(x270Message(t))
	isa := []byte(message[:isaByteCount])
	isa[isaComponentSeparatorIndex] = 'Z'
	_, _, err := DetectDelimiters(
		bufio.NewReader(strings.NewReader(string(isa))),
	)
	assertErrorNotNil(t, err)
	if !errors.Is(err, ErrInvalidISA) {
		t.Fatalf("expected ErrInvalidISA, got %v", err)
	}
}

// drainTokens reads every token from the tokenizer
func drainTokens(t *testing.T, tokenizer *Tokenizer) []*SegmentToken {
	t.Helper()
	var tokens []*SegmentToken
	for {
		token, err := tokenizer.Next()
		if err == io.EOF {
			break
		}
		assertNoError(t, err)
		tokens = append(tokens, token)
	}
	return tokens
}

func TestTokenizerSegmentSequence(t *testing.T) {
	tokenizer, err := NewTokenizer(strings.NewReader(string(x270Message(t))))
	assertNoError(t, err)

	tokens := drainTokens(t, tokenizer)
	assertEqual(t, tokens[0].ID, isaSegmentId)
	assertEqual(t, tokens[1].ID, gsSegmentId)
	assertEqual(t, tokens[2].ID, stSegmentId)
	assertEqual(t, tokens[len(tokens)-1].ID, ieaSegmentId)

	// ISA + GS + 17 transaction segments + GE + IEA
	assertEqual(t, len(tokens), 21)

	st := tokens[2]
	assertEqual(t, st.Fields[stIndexTransactionSetCode], "270")
	assertEqual(t, st.Fields[stIndexVersionCode], "005010X279A1")
}

// TestTokenizerTotality verifies that rejoining every emitted token
// with the original delimiters reproduces the newline-stripped input
// byte-for-byte.
func TestTokenizerTotality(t *testing.T) {
	message := x270Message(t)
	tokenizer, err := NewTokenizer(strings.NewReader(string(message)))
	assertNoError(t, err)

	var b strings.Builder
	delims := tokenizer.Delimiters()
	for _, token := range drainTokens(t, tokenizer) {
		b.WriteString(strings.Join(token.Fields, string(delims.Element)))
		b.WriteRune(delims.Terminator)
	}
	assertEqual(t, b.String(), replaceNewlines(t, message))
}

func TestTokenizerEmptyFieldsPreserved(t *testing.T) {
	message := string(x270Message(t))
	tokenizer, err := NewTokenizer(strings.NewReader(message))
	assertNoError(t, err)

	for _, token := range drainTokens(t, tokenizer) {
		if token.ID != hlSegmentId {
			continue
		}
		// HL*1**20*1 has an empty parent id at position 2
		if token.Fields[hlIndexHierarchicalId] == "1" {
			assertEqual(t, len(token.Fields), 5)
			assertEqual(t, token.Fields[hlIndexParentId], "")
			return
		}
	}
	t.Fatal("root HL segment not found")
}

func TestTokenizerInvalidSegmentId(t *testing.T) {
	message := string(x270Message(t))
	message = strings.Replace(message, "BHT*", "bht*", 1)

	tokenizer, err := NewTokenizer(strings.NewReader(message))
	assertNoError(t, err)

	var tokenErr error
	for {
		_, err := tokenizer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tokenErr = err
			break
		}
	}
	assertErrorNotNil(t, tokenErr)
	te := &TokenError{}
	if !errors.As(tokenErr, &te) {
		t.Fatalf("expected TokenError, got %T", tokenErr)
	}
	if te.Offset <= 0 {
		t.Errorf("expected a positive offset, got %d", te.Offset)
	}
}

func TestTokenizerUnterminatedSegment(t *testing.T) {
	message := strings.TrimRight(
		replaceNewlines(t, x270Message(t)), "~",
	)
	tokenizer, err := NewTokenizer(strings.NewReader(message))
	assertNoError(t, err)

	var tokenErr error
	for {
		_, err := tokenizer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tokenErr = err
			break
		}
	}
	assertErrorNotNil(t, tokenErr)
	if !errors.Is(tokenErr, ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment, got %v", tokenErr)
	}
}

func TestTokenizerStopsAfterIEA(t *testing.T) {
	message := replaceNewlines(t, x270Message(t)) + "JUNK AFTER IEA"
	tokenizer, err := NewTokenizer(strings.NewReader(message))
	assertNoError(t, err)

	tokens := drainTokens(t, tokenizer)
	assertEqual(t, tokens[len(tokens)-1].ID, ieaSegmentId)
}
