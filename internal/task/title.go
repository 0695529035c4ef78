package task

import "strings"

// NormalizeTitle produces the cross-store join key for a title:
// trim, lowercase, collapse internal whitespace runs to single spaces.
// Lossy by design — "Pay Rent" and "pay  rent" are the same task.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
