// =============================================================================
// Relatório de Visitas - Masking / Formatting Engine
// =============================================================================
//
// This module provides the input masks used by the visit-report form and the
// check-digit validators for Brazilian tax identifiers. All transforms are
// pure string -> string functions and are idempotent: applying a mask to its
// own output yields the same string, because every mask first strips all
// non-digit characters before re-inserting separators.
//
// MASKS:
//   - CPF/CNPJ  : 000.000.000-00 (11 digits) or 00.000.000/0000-00 (14 digits)
//   - CEP       : 00000-000
//   - Telefone  : (00) 0000-0000 (fixed line) or (00) 00000-0000 (mobile)
//   - Moeda     : digits treated as cents, formatted as pt-BR currency
//   - Data      : DD/MM/YYYY (no calendar validation)
//
// VALIDATORS:
//   - CPF and CNPJ check digits (weighted sums modulo 11); sequences of a
//     single repeated digit are rejected outright even when the checksum
//     happens to hold.
//
// Partial input is masked incrementally: separators are only inserted once
// the digit that follows them is present, matching the behavior of the
// on-change masks in the form UI.
//
// =============================================================================

package mask

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyPrinter localizes numeric output (thousands separators and the
// decimal comma) for pt-BR.
var currencyPrinter = message.NewPrinter(language.BrazilianPortuguese)

// =============================================================================
// DIGIT HELPERS
// =============================================================================

// Digits strips every non-digit character from s.
// This is the "remove mask" operation used before persisting or validating.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// insertSeparators rebuilds a digit string inserting the separator mapped to
// each digit position. Digits beyond maxDigits are dropped.
func insertSeparators(digits string, separators map[int]byte, maxDigits int) string {
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if sep, ok := separators[i]; ok {
			b.WriteByte(sep)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// =============================================================================
// TAX ID MASK (CPF / CNPJ)
// =============================================================================

// CPFCNPJ masks a tax identifier. Input with 11 digits or fewer is formatted
// as a CPF (000.000.000-00); anything longer is formatted as a CNPJ
// (00.000.000/0000-00).
func CPFCNPJ(value string) string {
	digits := Digits(value)

	if len(digits) <= 11 {
		return insertSeparators(digits, map[int]byte{3: '.', 6: '.', 9: '-'}, 11)
	}
	return insertSeparators(digits, map[int]byte{2: '.', 5: '.', 8: '/', 12: '-'}, 14)
}

// =============================================================================
// CEP MASK
// =============================================================================

// CEP masks a postal code as 00000-000.
func CEP(value string) string {
	return insertSeparators(Digits(value), map[int]byte{5: '-'}, 8)
}

// =============================================================================
// PHONE MASK
// =============================================================================

// Phone masks a Brazilian phone number. Ten digits produce the fixed-line
// pattern (00) 0000-0000; eleven digits produce the mobile pattern
// (00) 00000-0000. Shorter input is masked incrementally; the area-code
// parentheses only appear once a third digit exists.
func Phone(value string) string {
	digits := Digits(value)

	if len(digits) <= 2 {
		return digits
	}
	if len(digits) <= 10 {
		return "(" + digits[:2] + ") " + insertSeparators(digits[2:], map[int]byte{4: '-'}, 8)
	}
	return "(" + digits[:2] + ") " + insertSeparators(digits[2:], map[int]byte{5: '-'}, 9)
}

// =============================================================================
// CURRENCY MASK
// =============================================================================

// Currency interprets the digits of value as an amount in cents and formats
// it as pt-BR currency ("R$ 1.234,56"). Empty or non-numeric input yields an
// empty string.
func Currency(value string) string {
	digits := Digits(value)
	if digits == "" {
		return ""
	}

	cents, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return ""
	}

	return "R$ " + currencyPrinter.Sprintf("%.2f", cents/100)
}

// =============================================================================
// DATE MASK
// =============================================================================

// Date masks a date as DD/MM/YYYY. It only shapes the input; it does not
// check calendar validity.
func Date(value string) string {
	return insertSeparators(Digits(value), map[int]byte{2: '/', 4: '/'}, 8)
}

// =============================================================================
// CHECK-DIGIT VALIDATORS
// =============================================================================

// allSameDigit reports whether every byte of a digit string is identical.
// "000.000.000-00" style sequences satisfy the modulo-11 checksum but are
// not valid identifiers.
func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return len(digits) > 0
}

// cpfCheckDigit computes one CPF check digit over digits[0:n] using the
// descending weight sequence n+1, n, ..., 2.
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return remainder
}

// ValidCPF reports whether value carries a structurally valid CPF:
// 11 digits, not a repeated-digit run, both check digits correct.
func ValidCPF(value string) bool {
	digits := Digits(value)

	if len(digits) != 11 || allSameDigit(digits) {
		return false
	}

	if cpfCheckDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return cpfCheckDigit(digits, 10) == int(digits[10]-'0')
}

// cnpjCheckDigit computes one CNPJ check digit over digits[0:n] using the
// cyclic weight sequence ..., 9, 8, 7, 6, 5, 4, 3, 2 restarting at 9.
func cnpjCheckDigit(digits string, n int) int {
	weight := n - 7
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// ValidCNPJ reports whether value carries a structurally valid CNPJ:
// 14 digits, not a repeated-digit run, both check digits correct.
func ValidCNPJ(value string) bool {
	digits := Digits(value)

	if len(digits) != 14 || allSameDigit(digits) {
		return false
	}

	if cnpjCheckDigit(digits, 12) != int(digits[12]-'0') {
		return false
	}
	return cnpjCheckDigit(digits, 13) == int(digits[13]-'0')
}

// ValidCPFCNPJ dispatches on the stripped length of value: 11 digits are
// validated as a CPF, 14 as a CNPJ, anything else is invalid.
func ValidCPFCNPJ(value string) bool {
	switch len(Digits(value)) {
	case 11:
		return ValidCPF(value)
	case 14:
		return ValidCNPJ(value)
	default:
		return false
	}
}
