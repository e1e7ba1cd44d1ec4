package mathx

import "strconv"

func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func Mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Base36 renders n in signed, lower-case base 36 ("-3", "1z").
func Base36(n int) string {
	return strconv.FormatInt(int64(n), 36)
}

// ParseBase36 is the inverse of Base36 for values that fit in 32 bits.
func ParseBase36(s string) (int, error) {
	n, err := strconv.ParseInt(s, 36, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
