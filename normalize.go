package htmlwash

import "regexp"

var (
	afterBreak    = regexp.MustCompile(`(<br[^>]*>)(\S)`)
	betweenBlocks = regexp.MustCompile(`(</(?:div|p)>)(<(?:div|p)[ >/])`)
)

// normalizeBreaks inserts a newline after a line-break element that is
// immediately followed by content, and between adjacent block-container
// boundaries. Purely cosmetic: the inserted newlines are whitespace text
// the sanitizer preserves, so re-sanitizing normalized output is a no-op.
func normalizeBreaks(s string) string {
	s = afterBreak.ReplaceAllString(s, "$1\n$2")
	s = betweenBlocks.ReplaceAllString(s, "$1\n$2")
	return s
}
