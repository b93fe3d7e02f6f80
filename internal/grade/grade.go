// Package grade maps human-readable climbing grades onto ordered integer
// keys so they can be range-checked and sorted numerically while the
// original display string is preserved.
package grade

import (
	"strconv"
	"strings"
)

// InvalidKey is returned for any grade string that does not decode under
// the given system. Callers must treat it as "invalid", never as a low grade.
const InvalidKey = -1

// Grading system names as they appear in payloads and stored records.
const (
	SystemYDS = "YDS"
	SystemV   = "V"
)

// Key encodes a display grade into a single ordered integer:
//
//	YDS "5.2".."5.15"  -> 502..515 (letter suffixes like "5.10a" are discarded)
//	V   "V0".."V17"    -> 0..17
//
// Unknown systems and malformed grades yield InvalidKey. The function is
// pure and never panics on arbitrary input.
func Key(system, grade string) int {
	switch system {
	case SystemYDS:
		return ydsKey(grade)
	case SystemV:
		return vKey(grade)
	}
	return InvalidKey
}

// ydsKey maps "5.N" to 500+N. Anything not starting with "5." is invalid.
func ydsKey(g string) int {
	s := strings.ToLower(strings.TrimSpace(g))
	if !strings.HasPrefix(s, "5.") {
		return InvalidKey
	}
	var digits strings.Builder
	for _, ch := range s[len("5."):] {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return InvalidKey
	}
	return 500 + n
}

// vKey maps "V<n>" to n. The leading V is case-insensitive.
func vKey(g string) int {
	s := strings.ToUpper(strings.TrimSpace(g))
	if !strings.HasPrefix(s, "V") {
		return InvalidKey
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return InvalidKey
	}
	return n
}

// Rule couples a climb type to its required grading system and the valid
// key range within that system. Keeping the coupling in one table keeps
// the cross-field validation rule centrally testable.
type Rule struct {
	System string
	MinKey int
	MaxKey int
}

var rulesByClimbType = map[string]Rule{
	"boulder":  {System: SystemV, MinKey: 0, MaxKey: 17},
	"top-rope": {System: SystemYDS, MinKey: 502, MaxKey: 515},
	"sport":    {System: SystemYDS, MinKey: 502, MaxKey: 515},
	"trad":     {System: SystemYDS, MinKey: 502, MaxKey: 515},
}

// RuleForClimbType returns the grading rule for a climb type, or false for
// an unknown type.
func RuleForClimbType(climbType string) (Rule, bool) {
	r, ok := rulesByClimbType[climbType]
	return r, ok
}

// RangeForSystem returns the valid key range for a grading system, or
// false for an unknown system.
func RangeForSystem(system string) (min, max int, ok bool) {
	switch system {
	case SystemYDS:
		return 502, 515, true
	case SystemV:
		return 0, 17, true
	}
	return 0, 0, false
}

// InRange reports whether a grade decodes to a key inside the system's
// valid range.
func InRange(system, g string) bool {
	min, max, ok := RangeForSystem(system)
	if !ok {
		return false
	}
	k := Key(system, g)
	return k >= min && k <= max
}
