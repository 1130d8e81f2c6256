package users

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseID reads a user id from a path segment the way JavaScript's parseInt does
// without a radix: leading whitespace is skipped, an optional sign is accepted, a
// 0x prefix switches to hex, and parsing stops at the first non-digit. ok is false
// when no digits were read, which is the NaN case that never matches a user.
func ParseID(raw string) (id int, ok bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		// out of range for int64, so it cannot equal any assigned id
		return 0, false
	}
	if negative {
		n = -n
	}
	return int(n), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
