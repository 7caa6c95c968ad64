package x12

// 005010X223 institutional claim: the 837 variant with SV2 service
// lines. The loop hierarchy is shared with the professional claim;
// see x222.go.

const versionX223 = "005010X223A3"

func init() {
	RegisterTransaction(x837Spec(versionX223, func() []*SegmentSlot {
		return []*SegmentSlot{
			Slot(sv2Segment, Required),
		}
	}))
}
