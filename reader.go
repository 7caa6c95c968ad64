package x12

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidISA indicates the opening envelope segment could not be
	// read, or declared an unusable delimiter set
	ErrInvalidISA = errors.New("invalid ISA segment")
	// ErrInvalidSegment indicates a malformed segment was encountered
	// while tokenizing
	ErrInvalidSegment = errors.New("invalid segment")
)

var segmentIdPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,2}$`)

// DelimiterError is returned when the delimiter set conveyed in the ISA
// segment violates the distinctness/printability invariants, or when the
// ISA segment itself cannot be read.
type DelimiterError struct {
	Err error
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("delimiter error: %s", e.Err)
}

func (e *DelimiterError) Unwrap() error {
	return e.Err
}

func newDelimiterError(format string, args ...any) error {
	return &DelimiterError{Err: fmt.Errorf(format, args...)}
}

// TokenError is returned when the tokenizer encounters a malformed
// segment. Offset is the byte offset of the offending segment within
// the input.
type TokenError struct {
	Offset int64
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token error at offset %d: %s", e.Offset, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func newTokenError(offset int64, format string, args ...any) error {
	return &TokenError{Offset: offset, Err: fmt.Errorf(format, args...)}
}

// Delimiters is the set of separator characters discovered from the
// opening ISA segment. The zero value is not valid - use
// DefaultDelimiters or DetectDelimiters.
type Delimiters struct {
	Element    rune `json:"elementSeparator"`
	Repetition rune `json:"repetitionSeparator"`
	Component  rune `json:"componentSeparator"`
	Terminator rune `json:"segmentTerminator"`
}

// DefaultDelimiters returns the conventional X12 delimiter set:
// `*` / `^` / `:` / `~`
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Element:    '*',
		Repetition: '^',
		Component:  ':',
		Terminator: '~',
	}
}

// validate checks the delimiter invariants: all four characters must be
// distinct, and none may be alphanumeric or whitespace.
func (d Delimiters) validate() error {
	chars := []rune{d.Element, d.Repetition, d.Component, d.Terminator}
	seen := make(map[rune]bool, len(chars))
	for _, c := range chars {
		if seen[c] {
			return newDelimiterError(
				"%w: separators must be distinct (got %q twice)",
				ErrInvalidISA, c,
			)
		}
		seen[c] = true
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return newDelimiterError(
				"%w: separator %q cannot be alphanumeric",
				ErrInvalidISA, c,
			)
		}
		if unicode.IsSpace(c) {
			return newDelimiterError(
				"%w: separator %q cannot be whitespace",
				ErrInvalidISA, c,
			)
		}
	}
	return nil
}

// SegmentToken is a single tokenized segment: the segment identifier
// plus its ordered field values. Fields[0] is the identifier itself,
// mirroring the wire layout. Offset is the byte offset of the segment
// within the source.
type SegmentToken struct {
	ID     string
	Fields []string
	Offset int64
}

// DetectDelimiters reads the fixed-layout 106-byte ISA segment from the
// given reader and extracts the delimiter set. It returns the delimiters
// along with the ISA segment emitted as 16 padded fields (untrimmed),
// matching the fixed-width wire format.
func DetectDelimiters(r *bufio.Reader) (Delimiters, *SegmentToken, error) {
	var d Delimiters

	// leading whitespace ahead of the envelope is tolerated
	var skipped int64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return d, nil, newDelimiterError(
				"%w: %s", ErrInvalidISA, err,
			)
		}
		if !unicode.IsSpace(rune(b)) {
			if err := r.UnreadByte(); err != nil {
				return d, nil, err
			}
			break
		}
		skipped++
	}

	isa := make([]byte, isaByteCount)
	n, err := io.ReadFull(r, isa)
	if err != nil {
		return d, nil, newDelimiterError(
			"%w: expected %d bytes for ISA segment, got %d",
			ErrInvalidISA, isaByteCount, n,
		)
	}
	if string(isa[:3]) != isaSegmentId {
		return d, nil, newDelimiterError(
			"%w: input does not begin with %s",
			ErrInvalidISA, isaSegmentId,
		)
	}

	d.Element = rune(isa[isaElementSeparatorIndex])
	d.Repetition = rune(isa[isaRepetitionSeparatorIndex])
	d.Component = rune(isa[isaComponentSeparatorIndex])
	d.Terminator = rune(isa[isaSegmentTerminatorIndex])
	if err := d.validate(); err != nil {
		return d, nil, err
	}

	fields := strings.Split(
		string(isa[:isaSegmentTerminatorIndex]),
		string(d.Element),
	)
	if len(fields) != isaElementCount {
		return d, nil, newDelimiterError(
			"%w: expected %d ISA elements, got %d",
			ErrInvalidISA, isaElementCount, len(fields),
		)
	}
	token := &SegmentToken{
		ID:     isaSegmentId,
		Fields: fields,
		Offset: skipped,
	}
	return d, token, nil
}

// Tokenizer produces a lazy, single-pass sequence of segment tokens
// from a byte source, using the delimiters discovered from the ISA
// segment. Iteration stops at EOF or after the IEA segment has been
// emitted.
type Tokenizer struct {
	r          *bufio.Reader
	delimiters Delimiters
	offset     int64
	isa        *SegmentToken
	sentISA    bool
	done       bool
}

// NewTokenizer reads the ISA segment from r to discover the delimiter
// set, returning a Tokenizer positioned to emit the ISA as its first
// token.
func NewTokenizer(r io.Reader) (*Tokenizer, error) {
	br := bufio.NewReader(r)
	delims, isa, err := DetectDelimiters(br)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{
		r:          br,
		delimiters: delims,
		offset:     isa.Offset + isaByteCount,
		isa:        isa,
	}, nil
}

// Delimiters returns the delimiter set discovered from the ISA segment.
func (t *Tokenizer) Delimiters() Delimiters {
	return t.delimiters
}

// Next returns the next segment token, or io.EOF when the sequence is
// exhausted. Segments may terminate with the segment terminator alone,
// or terminator followed by CR/LF.
func (t *Tokenizer) Next() (*SegmentToken, error) {
	if !t.sentISA {
		t.sentISA = true
		return t.isa, nil
	}
	if t.done {
		return nil, io.EOF
	}

	// skip whitespace between segments
	for {
		b, err := t.r.ReadByte()
		if err == io.EOF {
			t.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		t.offset++
		if !unicode.IsSpace(rune(b)) {
			if err := t.r.UnreadByte(); err != nil {
				return nil, err
			}
			t.offset--
			break
		}
	}

	start := t.offset
	var b strings.Builder
	terminated := false
	for {
		c, err := t.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.offset++
		if rune(c) == t.delimiters.Terminator {
			terminated = true
			break
		}
		b.WriteByte(c)
	}
	if !terminated {
		return nil, newTokenError(
			start,
			"%w: unterminated segment %q",
			ErrInvalidSegment,
			truncated(b.String(), 20),
		)
	}

	fields := strings.Split(b.String(), string(t.delimiters.Element))
	segmentId := fields[0]
	if segmentId == "" {
		return nil, newTokenError(
			start, "%w: empty segment identifier", ErrInvalidSegment,
		)
	}
	if !segmentIdPattern.MatchString(segmentId) {
		return nil, newTokenError(
			start,
			"%w: segment identifier %q does not match %s",
			ErrInvalidSegment,
			segmentId,
			segmentIdPattern.String(),
		)
	}
	if segmentId == ieaSegmentId {
		t.done = true
	}
	return &SegmentToken{ID: segmentId, Fields: fields, Offset: start}, nil
}

// truncated shortens s to its first n bytes, followed by "...", for
// error messages
func truncated(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
