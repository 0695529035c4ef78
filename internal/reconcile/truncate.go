package reconcile

import (
	"fmt"
	"strings"
)

// truncationSuffixBudget reserves room for the omission suffix so the final
// text always fits within the store's limit.
const truncationSuffixBudget = 100

// Truncate bounds text to maxLength with structure-preserving truncation.
// Text already within the limit is returned unchanged. Otherwise the cut
// lands on the last line boundary before the reserved suffix budget (a
// trailing partial line is dropped rather than cut mid-line), and a suffix
// states how many characters were omitted. A single oversized line with no
// break falls back to a raw character cut. maxLength <= 0 disables the limit.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 || len(text) <= maxLength {
		return text
	}

	budget := maxLength - truncationSuffixBudget
	if budget < 0 {
		budget = 0
	}
	kept := text[:budget]
	if i := strings.LastIndexByte(kept, '\n'); i > 0 {
		kept = kept[:i]
	}

	omitted := len(text) - len(kept)
	return kept + fmt.Sprintf("\n\n[... %d more characters in full content ...]", omitted)
}
