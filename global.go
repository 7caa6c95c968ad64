package x12

const (
	isaSegmentId = "ISA"
	ieaSegmentId = "IEA"
	gsSegmentId  = "GS"
	geSegmentId  = "GE"
	stSegmentId  = "ST"
	seSegmentId  = "SE"
	hlSegmentId  = "HL"

	headerLoopName = "header"
	footerLoopName = "footer"

	segmentKeySuffix = "_segment"

	basicCharacterSet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 !\"&'()+*,-./:;?="
	extendedCharacterSet = basicCharacterSet + "abcdefghijklmnopqrstuvwxyz%~@[]_{}\\|<>^`#$"

	isaElementCount = 17
	isaByteCount    = 106

	// delimiter positions within the fixed-width ISA segment
	isaElementSeparatorIndex    = 3
	isaRepetitionSeparatorIndex = 82
	isaComponentSeparatorIndex  = 104
	isaSegmentTerminatorIndex   = 105

	loopPathSeparator = "/"
)

const (
	isaIndexSegmentId = iota
	isaIndexAuthInfoQualifier
	isaIndexAuthInfo
	isaIndexSecurityInfoQualifier
	isaIndexSecurityInfo
	isaIndexSenderIdQualifier
	isaIndexSenderId
	isaIndexReceiverIdQualifier
	isaIndexReceiverId
	isaIndexDate
	isaIndexTime
	isaIndexRepetitionSeparator
	isaIndexVersion
	isaIndexControlNumber
	isaIndexAckRequested
	isaIndexUsageIndicator
	isaIndexComponentElementSeparator
)

const (
	ieaIndexFunctionalGroupCount = iota + 1
	ieaIndexControlNumber
)

const (
	gsIndexFunctionalIdentifierCode = iota + 1
	gsIndexSenderCode
	gsIndexReceiverCode
	gsIndexDate
	gsIndexTime
	gsIndexControlNumber
	gsIndexResponsibleAgencyCode
	gsIndexVersion
)

const (
	geIndexNumberOfIncludedTransactionSets = iota + 1
	geIndexControlNumber
)

const (
	stIndexTransactionSetCode = iota + 1
	stIndexControlNumber
	stIndexVersionCode
)

const (
	seIndexNumberOfIncludedSegments = iota + 1
	seIndexControlNumber
)

const (
	hlIndexHierarchicalId = iota + 1
	hlIndexParentId
	hlIndexLevelCode
	hlIndexChildCode
)

// isaLen* consts indicate the fixed width of elements in the ISA
// header (no more, no less, whitespace padded)
const (
	isaLenAuthInfoQualifier     = 2
	isaLenAuthInfo              = 10
	isaLenSecurityInfoQualifier = 2
	isaLenSecurityInfo          = 10
	isaLenSenderIdQualifier     = 2
	isaLenSenderId              = 15
	isaLenReceiverIdQualifier   = 2
	isaLenReceiverId            = 15
	isaLenDate                  = 6
	isaLenTime                  = 4
	isaLenVersion               = 5
	isaLenControlNumber         = 9
	isaLenAckRequested          = 1
	isaLenUsageIndicator        = 1
)

// HL03 hierarchical level codes used by the healthcare transactions
// in scope
const (
	hlLevelInformationSource   = "20"
	hlLevelInformationReceiver = "21"
	hlLevelSubscriber          = "22"
	hlLevelDependent           = "23"
)

// functionalIdentifierCodes maps transaction set codes to the
// GS01 functional identifier code expected for their group
var functionalIdentifierCodes = map[string]string{
	"270": "HS",
	"271": "HB",
	"276": "HR",
	"277": "HN",
	"278": "HI",
	"820": "RA",
	"834": "BE",
	"835": "HP",
	"837": "HC",
	"997": "FA",
	"999": "FA",
}
