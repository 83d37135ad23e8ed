package domain

import "strings"

var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}
var regon9Weights = [8]int{8, 9, 2, 3, 4, 5, 6, 7}
var regon14Weights = [13]int{2, 4, 8, 5, 0, 9, 7, 3, 6, 1, 2, 4, 8}

// NormalizeDigits strips everything but ASCII digits.
func NormalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNIP checks a Polish NIP against the mod-11 weighted checksum
// (weights 6,5,7,2,3,4,5,6,7). Accepts "xxx-xxx-xx-xx" or "xxxxxxxxxx"
// forms; the control digit (10th) must equal the computed remainder, and
// a computed remainder of 10 is a rejection (not a valid control digit).
func ValidateNIP(nip string) (ok bool, message string) {
	digits := NormalizeDigits(nip)
	if len(digits) != 10 {
		return false, "NIP must contain exactly 10 digits"
	}
	sum := 0
	for i, w := range nipWeights {
		sum += w * int(digits[i]-'0')
	}
	rem := sum % 11
	if rem == 10 {
		return false, "invalid NIP control digit"
	}
	control := int(digits[9] - '0')
	if rem != control {
		return false, "NIP checksum mismatch"
	}
	return true, ""
}

// ValidateREGON checks the 9-digit or 14-digit REGON checksum.
func ValidateREGON(regon string) (ok bool, message string) {
	digits := NormalizeDigits(regon)
	switch len(digits) {
	case 9:
		sum := 0
		for i, w := range regon9Weights {
			sum += w * int(digits[i]-'0')
		}
		rem := sum % 11
		if rem == 10 {
			rem = 0
		}
		if rem != int(digits[8]-'0') {
			return false, "REGON-9 checksum mismatch"
		}
		return true, ""
	case 14:
		sum := 0
		for i, w := range regon14Weights {
			sum += w * int(digits[i]-'0')
		}
		rem := sum % 11
		if rem == 10 {
			rem = 0
		}
		if rem != int(digits[13]-'0') {
			return false, "REGON-14 checksum mismatch"
		}
		return true, ""
	default:
		return false, "REGON must be 9 or 14 digits"
	}
}
