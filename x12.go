// Package x12 parses and validates ASC X12 005010 healthcare EDI
// messages, producing validated transaction records, and re-serializes
// those records back into X12 text.
//
// The pipeline is a strictly sequential fold over a lazy token
// sequence: delimiters are discovered from the opening ISA segment,
// segments are tokenized, loop boundaries are inferred through a
// per-transaction dispatch table, and the accumulated record is bound
// and validated against the registered schemas. Registries are
// initialized once at startup and immutable afterward; distinct inputs
// may be parsed in parallel.
package x12

import (
	"io"
)

// Segments tokenizes the given source without validation, returning a
// lazy single-pass sequence of segment tokens. Call Next until io.EOF.
func Segments(r io.Reader) (*Tokenizer, error) {
	return NewTokenizer(r)
}

// Models runs the full pipeline over the given source, returning one
// model per ST..SE transaction set. Fatal delimiter, token, and
// envelope errors are returned; shape and semantic findings accumulate
// on each model's Diagnostics, and callers decide whether to accept a
// model with findings.
//
// A duplicate ST without an intervening SE is treated as a fatal
// structure error: the boundary of the open transaction cannot be
// recovered.
func Models(r io.Reader) ([]*TransactionModel, error) {
	p, err := newParser(r)
	if err != nil {
		return nil, err
	}
	return p.run()
}

// InterchangeHeader is the ISA segment
type InterchangeHeader struct {
	SegmentID                 string `json:"-"`                            // ISA segment ID
	AuthInfoQualifier         string `json:"authorizationQualifier"`       // ISA01
	AuthInfo                  string `json:"authorizationInformation"`     // ISA02
	SecurityInfoQualifier     string `json:"securityInformationQualifier"` // ISA03
	SecurityInfo              string `json:"securityInformation"`          // ISA04
	SenderIDQualifier         string `json:"senderIdQualifier"`            // ISA05
	SenderID                  string `json:"senderId"`                     // ISA06
	ReceiverIDQualifier       string `json:"receiverIdQualifier"`          // ISA07
	ReceiverID                string `json:"receiverId"`                   // ISA08
	Date                      string `json:"date"`                         // ISA09
	Time                      string `json:"time"`                         // ISA10
	RepetitionSeparator       string `json:"repetitionSeparator"`          // ISA11
	Version                   string `json:"controlVersionNumber"`         // ISA12
	ControlNumber             string `json:"controlNumber"`                // ISA13
	AckRequested              string `json:"acknowledgmentRequested"`      // ISA14
	UsageIndicator            string `json:"usageIndicator"`               // ISA15
	ComponentElementSeparator string `json:"componentElementSeparator"`    // ISA16
}

// FunctionalGroupHeader is the GS segment
type FunctionalGroupHeader struct {
	SegmentID                            string `json:"-"`                        // GS segment ID
	IdentifierCode                       string `json:"functionalIdentifierCode"` // GS01
	ApplicationSenderCode                string `json:"applicationSenderCode"`    // GS02
	ApplicationReceiverCode              string `json:"applicationReceiverCode"`  // GS03
	Date                                 string `json:"date"`                     // GS04
	Time                                 string `json:"time"`                     // GS05
	ControlNumber                        string `json:"controlNumber"`            // GS06
	ResponsibleAgencyCode                string `json:"responsibleAgencyCode"`    // GS07
	VersionReleaseIndustryIdentifierCode string `json:"versionCode"`              // GS08
}

// InterchangeHeader returns the captured ISA segment as a struct, or
// nil when the model has no envelope
func (m *TransactionModel) InterchangeHeader() *InterchangeHeader {
	if len(m.envelope.isa) == 0 {
		return nil
	}
	isa := make([]string, isaElementCount)
	copy(isa, m.envelope.isa)
	return &InterchangeHeader{
		isa[isaIndexSegmentId],
		isa[isaIndexAuthInfoQualifier],
		isa[isaIndexAuthInfo],
		isa[isaIndexSecurityInfoQualifier],
		isa[isaIndexSecurityInfo],
		isa[isaIndexSenderIdQualifier],
		isa[isaIndexSenderId],
		isa[isaIndexReceiverIdQualifier],
		isa[isaIndexReceiverId],
		isa[isaIndexDate],
		isa[isaIndexTime],
		isa[isaIndexRepetitionSeparator],
		isa[isaIndexVersion],
		isa[isaIndexControlNumber],
		isa[isaIndexAckRequested],
		isa[isaIndexUsageIndicator],
		isa[isaIndexComponentElementSeparator],
	}
}

// GroupHeader returns the captured GS segment as a struct, or nil when
// the model has no functional group envelope
func (m *TransactionModel) GroupHeader() *FunctionalGroupHeader {
	if len(m.envelope.gs) == 0 {
		return nil
	}
	gs := make([]string, gsIndexVersion+1)
	copy(gs, m.envelope.gs)
	return &FunctionalGroupHeader{
		gs[0],
		gs[gsIndexFunctionalIdentifierCode],
		gs[gsIndexSenderCode],
		gs[gsIndexReceiverCode],
		gs[gsIndexDate],
		gs[gsIndexTime],
		gs[gsIndexControlNumber],
		gs[gsIndexResponsibleAgencyCode],
		gs[gsIndexVersion],
	}
}

// UsageIndicator returns ISA15 (production/test flag), or an empty
// string when the model has no envelope
func (m *TransactionModel) UsageIndicator() string {
	if len(m.envelope.isa) > isaIndexUsageIndicator {
		return m.envelope.isa[isaIndexUsageIndicator]
	}
	return ""
}
