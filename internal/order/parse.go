package order

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	quantitySuffixRe = regexp.MustCompile(`(?i)^(.*\S)\s+x\s*(\d+)$`)
	quantityPrefixRe = regexp.MustCompile(`(?i)^(\d+)\s*x\s+(\S.*)$`)
)

// ParseItemName extracts a quantity embedded in a free-text item title.
// Orders from before quantities were structured encode them as "Burger x2"
// or "2x Burger"; the suffix form wins when both could match. Unparseable
// input falls back to quantity 1 with the title untouched.
func ParseItemName(name string) (quantity int, cleanName string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 1, "Unknown Item"
	}

	if m := quantitySuffixRe.FindStringSubmatch(trimmed); m != nil {
		if qty, err := strconv.Atoi(m[2]); err == nil && qty > 0 {
			return qty, strings.TrimSpace(m[1])
		}
	}
	if m := quantityPrefixRe.FindStringSubmatch(trimmed); m != nil {
		if qty, err := strconv.Atoi(m[1]); err == nil && qty > 0 {
			return qty, strings.TrimSpace(m[2])
		}
	}

	return 1, trimmed
}
