package code

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type mathSource struct{}

func (mathSource) IntN(n int) int { return rand.IntN(n) }

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic("crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// MathSource returns the default non-cryptographic source. Codes are
// identifiers, not secrets.
func MathSource() Source { return mathSource{} }

// CryptoSource returns a source backed by crypto/rand, for deployments that
// let a code alone grant access to a group.
func CryptoSource() Source { return cryptoSource{} }

// Formatter builds candidate codes and recognizes existing ones.
// It is safe for concurrent use when its Source is.
type Formatter struct {
	table *Table
	src   Source
}

// NewFormatter creates a Formatter drawing randomness from src.
// A nil src uses MathSource.
func NewFormatter(table *Table, src Source) *Formatter {
	if src == nil {
		src = MathSource()
	}
	return &Formatter{table: table, src: src}
}

// Generate returns the kind's prefix followed by Length-1 symbols sampled
// uniformly from Alphabet. It returns "" for an unconfigured kind.
func (f *Formatter) Generate(kind Kind) string {
	cfg, ok := f.table.For(kind)
	if !ok {
		return ""
	}

	b := make([]byte, cfg.Length)
	b[0] = cfg.Prefix
	for i := 1; i < len(b); i++ {
		b[i] = Alphabet[f.src.IntN(AlphabetSize)]
	}
	return string(b)
}

// DetectKind returns the kind a code belongs to, judged by its first
// character and length.
func (f *Formatter) DetectKind(c string) (Kind, bool) {
	return f.table.Detect(c)
}

// Normalize trims surrounding whitespace and upper-cases raw. Compatibility
// forms such as full-width letters are folded to ASCII first.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(norm.NFKC.String(raw)))
}
