package x12

// 005010X224 dental claim: the 837 variant with SV3 service lines and
// tooth identification. The loop hierarchy is shared with the
// professional claim; see x222.go.

const versionX224 = "005010X224A2"

func init() {
	RegisterTransaction(x837Spec(versionX224, func() []*SegmentSlot {
		return []*SegmentSlot{
			Slot(sv3Segment, Required),
			RepeatSlot(tooSegment, Situational, 0, 32),
		}
	}))
}
