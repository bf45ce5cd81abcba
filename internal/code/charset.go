package code

import "strings"

// Alphabet is the symbol set for every character after the prefix.
// It leaves out 0, O, 1 and I, which are easily confused when handwritten
// or read aloud. Lower-case letters never appear.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AlphabetSize is the number of symbols in Alphabet.
const AlphabetSize = len(Alphabet)

// InAlphabet reports whether r is one of the Alphabet symbols.
func InAlphabet(r rune) bool {
	return strings.ContainsRune(Alphabet, r)
}
