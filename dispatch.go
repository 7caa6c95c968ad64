package x12

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MatchRule maps a segment id, plus optional field equality conditions,
// to the loop the matched segment enters. Rules are evaluated top-down;
// the first match wins.
type MatchRule struct {
	// SegmentID is the wire identifier the rule applies to
	// (ex: `HL`, `NM1`)
	SegmentID string
	// Conditions are field equality checks. The key is the field's
	// record name; the value is the set of accepted values ("one of").
	// A segment matches when every condition is satisfied.
	Conditions map[string][]string
	// Context restricts the rule to segments observed while one of
	// the named loops is active. Entries match the active loop's name,
	// or a trailing portion of its fully-qualified path when the same
	// loop name occurs at more than one position (ex:
	// `loop_2000c/loop_2300`). An empty list matches any loop.
	Context []string
	// Target is the fully-qualified path of the loop the segment
	// enters (ex: `loop_2000a/loop_2000b`)
	Target string
	// NewInstance appends a fresh record to the target (repeating)
	// loop before descending
	NewInstance bool
	// SetupHierarchy updates the cached subscriber/patient records
	// from the entered loop
	SetupHierarchy bool
}

// matches returns true when the segment id matches, the active loop
// satisfies the context guard, and every condition is satisfied by the
// segment's raw field values. Condition values are compared
// case-insensitively, mirroring the wire convention of uppercase
// identifiers.
func (r *MatchRule) matches(
	seg *SegmentRecord,
	activeName string,
	activePath string,
) bool {
	if r.SegmentID != seg.ID {
		return false
	}
	if len(r.Context) > 0 {
		var inContext bool
		for _, entry := range r.Context {
			if entry == activeName ||
				strings.HasSuffix(activePath, entry) {
				inContext = true
				break
			}
		}
		if !inContext {
			return false
		}
	}
	for field, accepted := range r.Conditions {
		value := strings.ToUpper(seg.Get(field))
		var ok bool
		for _, want := range accepted {
			if value == strings.ToUpper(want) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// sameConditions reports whether two rules share a segment id, context
// guard, and an identical condition set - a configuration error when
// both are registered for one transaction.
func (r *MatchRule) sameConditions(other *MatchRule) bool {
	if r.SegmentID != other.SegmentID {
		return false
	}
	a := append([]string{}, r.Context...)
	b := append([]string{}, other.Context...)
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	if len(r.Conditions) != len(other.Conditions) {
		return false
	}
	for field, accepted := range r.Conditions {
		otherAccepted, ok := other.Conditions[field]
		if !ok {
			return false
		}
		av := append([]string{}, accepted...)
		bv := append([]string{}, otherAccepted...)
		sort.Strings(av)
		sort.Strings(bv)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !strings.EqualFold(av[i], bv[i]) {
				return false
			}
		}
	}
	return true
}

// transactionRegistry holds the supported transaction specs, keyed by
// (transaction code, implementation version). It is populated once at
// startup and immutable afterward, so lookups are freely shareable
// across concurrent parses.
type transactionRegistry struct {
	mu    sync.RWMutex
	specs map[string]*TransactionSpec
}

var defaultRegistry = &transactionRegistry{
	specs: make(map[string]*TransactionSpec),
}

func transactionKey(code string, version string) string {
	return code + "|" + version
}

// RegisterTransaction validates and registers a transaction spec.
// Registration happens from package init functions; an invalid spec is
// a programming error and panics.
func RegisterTransaction(spec *TransactionSpec) {
	if err := spec.Validate(); err != nil {
		panic(
			fmt.Sprintf(
				"unable to validate transaction spec %s: %s",
				spec.Key,
				err.Error(),
			),
		)
	}
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	key := transactionKey(spec.TransactionCode, spec.Version)
	if _, exists := defaultRegistry.specs[key]; exists {
		panic(fmt.Sprintf("transaction spec %s already registered", key))
	}
	defaultRegistry.specs[key] = spec
}

// findTransactionSpec returns the registered spec for the given
// transaction code and implementation version, or nil.
func findTransactionSpec(code string, version string) *TransactionSpec {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	return defaultRegistry.specs[transactionKey(code, version)]
}

// SupportedTransactions returns the (code, version) keys of all
// registered transaction specs, sorted.
func SupportedTransactions() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	keys := make([]string, 0, len(defaultRegistry.specs))
	for _, s := range defaultRegistry.specs {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)
	return keys
}

// match evaluates the transaction's dispatch rules against the given
// segment record, returning the first matching rule or nil.
func (t *TransactionSpec) match(
	seg *SegmentRecord,
	activeName string,
	activePath string,
) *MatchRule {
	for _, rule := range t.ruleIndex[seg.ID] {
		if rule.matches(seg, activeName, activePath) {
			return rule
		}
	}
	return nil
}
