package transfer

import (
	"fmt"
	"strings"
)

// maskName hides the interior of each word of the holder's name, keeping the
// first and last character of every word visible.
func maskName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(w)
		if len(runes) <= 2 {
			continue
		}
		for j := 1; j < len(runes)-1; j++ {
			runes[j] = '*'
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// maskDocument reveals only the first three and last two digits of a CPF/CNPJ,
// e.g. "12345678900" becomes "123.***.***-00". Values that do not look like a
// document are returned unchanged.
func maskDocument(doc string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, doc)

	if len(digits) < 10 || len(digits) > 14 {
		return doc
	}
	return fmt.Sprintf("%s.***.***-%s", digits[:3], digits[len(digits)-2:])
}
