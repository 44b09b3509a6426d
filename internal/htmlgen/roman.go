package htmlgen

import (
	"regexp"
	"strconv"
	"strings"
)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// MaxRoman is the largest value written in standard Roman numerals.
const MaxRoman = 3999

// ToRoman converts an integer in [1, MaxRoman] to an uppercase Roman numeral
// using greedy subtraction. Anything outside that range yields "".
func ToRoman(n int) string {
	if n < 1 || n > MaxRoman {
		return ""
	}

	var b strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			b.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return b.String()
}

var digitRun = regexp.MustCompile(`\d+`)

// romanOutOfRange reports whether the first run of digits in s is too large
// to write as a Roman numeral, including runs that overflow an int.
func romanOutOfRange(s string) bool {
	match := strings.TrimLeft(digitRun.FindString(s), "0")
	if match == "" {
		return false
	}
	if len(match) > len(strconv.Itoa(MaxRoman)) {
		return true
	}
	n, _ := strconv.Atoi(match)
	return n > MaxRoman
}

// leadingNumber returns the first run of digits in s, if any.
func leadingNumber(s string) (int, bool) {
	match := digitRun.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
