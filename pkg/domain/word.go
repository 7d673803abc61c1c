package domain

import (
	"fmt"
	"strings"
)

// ParseWord converts a word over the letters a, b, ... into symbols.
// The letter for symbol n is SymbolName(n); only the first 26 symbols can
// be spelled this way.
func ParseWord(word string, alphabetSize int) ([]int, error) {
	symbols := make([]int, 0, len(word))
	for i, r := range word {
		if r < 'a' || r > 'z' {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, r, i)
		}
		sym := int(r-'a') + 1
		if sym > alphabetSize {
			return nil, fmt.Errorf("%w: %q at offset %d exceeds alphabet size %d", ErrInvalidSymbol, r, i, alphabetSize)
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

// FormatWord is the inverse of ParseWord.
func FormatWord(symbols []int) string {
	var sb strings.Builder
	for _, sym := range symbols {
		sb.WriteString(SymbolName(sym))
	}
	return sb.String()
}
