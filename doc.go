// Package htmlwash sanitizes untrusted HTML, typically rich text pasted
// from email, word-processor, or spreadsheet clients, into a safe subset
// suitable for re-embedding.
//
// # Overview
//
// htmlwash parses an HTML string with golang.org/x/net/html, then builds a
// fresh output tree containing only the structure a [Policy] permits. The
// output tree shares no nodes with the input, so the result is a clean
// copy rather than a patched original. Disallowed elements are dropped
// together with their entire subtree; text content is never altered.
//
// # Policies
//
// A [Policy] holds independent whitelists for:
//   - element tag names
//   - attribute names
//   - CSS property names copied from style attributes
//   - URI scheme prefixes permitted in href/action values
//
// [DefaultPolicy] covers the markup paste sources commonly produce.
// [NewPolicy] replaces any category wholesale via [Options]; categories not
// supplied keep their defaults, and replacing one never affects another.
//
// A small set of content-passthrough tags (wrapper markers some source
// applications insert) is not kept as itself: the element is replaced with
// a neutral <div> and its children are preserved.
//
// # Security
//
// The model is fail-closed-by-omission: anything not affirmatively
// whitelisted (element, attribute, style property, or URI) is silently
// dropped. href/action values carrying an explicit scheme must start with a
// whitelisted prefix (the test is literal and case-sensitive), which blocks
// javascript: and similar vectors. Sanitization never returns an error and
// never panics on malformed input.
//
// # Thread Safety
//
// A [Sanitizer] is safe for concurrent use once constructed. Policies must
// not be mutated after first use.
//
// # Example
//
//	s := htmlwash.New(htmlwash.DefaultPolicy())
//	clean := s.Sanitize(pastedInput)
package htmlwash
