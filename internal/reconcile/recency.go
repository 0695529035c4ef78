package reconcile

import "time"

// newerThan reports whether candidate is definitively newer than reference:
// the difference must exceed skew, not merely be positive. Zero timestamps
// (missing or unparseable at the adapter boundary) compare as oldest, so a
// record without a modification time never wins a conflict.
//
// Applied symmetrically with the same skew in both directions, at most one
// of newerThan(a,b) / newerThan(b,a) holds; a tie within the window produces
// no update on either side.
func newerThan(candidate, reference time.Time, skew time.Duration) bool {
	return candidate.Sub(reference) > skew
}

// authoritative resolves which side wins a matched pair under a policy.
// ok is false when neither side is definitively newer under latest-wins
// (or the policy is disabled).
func authoritative(policy Policy, aMod, bMod time.Time, skew time.Duration) (winner Side, ok bool) {
	switch policy {
	case PolicyAWins:
		return SideA, true
	case PolicyBWins:
		return SideB, true
	case PolicyLatestWins:
		if newerThan(aMod, bMod, skew) {
			return SideA, true
		}
		if newerThan(bMod, aMod, skew) {
			return SideB, true
		}
		return "", false
	default:
		return "", false
	}
}
