package cardnumber

import "strings"

const (
	maskSymbol  = "*"
	visibleNums = 4
)

// Mask replaces all but the last four digits with asterisks and formats the
// result in blocks of four.
func Mask(number string) string {
	if len(number) < visibleNums {
		return "**** **** **** ****"
	}

	masked := strings.Repeat(maskSymbol, len(number)-visibleNums) + number[len(number)-visibleNums:]
	return Format(masked)
}

// Format groups a 16-character card number into blocks of four. Any other
// length is returned unchanged.
func Format(number string) string {
	if len(number) != 16 {
		return number
	}
	return number[0:4] + " " + number[4:8] + " " + number[8:12] + " " + number[12:16]
}

// LastFour returns the last four digits of a card number.
func LastFour(number string) string {
	if len(number) < visibleNums {
		return "****"
	}
	return number[len(number)-visibleNums:]
}
