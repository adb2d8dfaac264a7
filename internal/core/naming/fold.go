package naming

import (
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // accents split off by NFKD
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF and friends
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold strips diacritics and width variants so "Café" reads "Cafe" before Sanitize.
// Runes with no ASCII base survive and are replaced by Sanitize as usual
func Fold(s string) string {
	t := foldPool.Get().(transform.Transformer)
	defer foldPool.Put(t)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SanitizeFolded is Sanitize(Fold(s))
func SanitizeFolded(s string) string { return Sanitize(Fold(s)) }
