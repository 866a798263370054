package htmlwash

import "strings"

// Options overrides one or more whitelist categories of a Policy. A nil
// slice keeps the built-in default for that category; a non-nil slice,
// including an empty one, replaces the category wholesale. Categories are
// independent: overriding one never touches the others.
//
// Tag, attribute, and CSS property names are folded to lower case, the
// casing golang.org/x/net/html normalizes parsed names to. Scheme prefixes
// are kept exactly as given (see Policy.AllowedScheme).
type Options struct {
	// AllowedTags lists element tag names kept in output.
	AllowedTags []string

	// AllowedAttributes lists attribute names eligible to be copied,
	// on any tag.
	AllowedAttributes []string

	// AllowedCSSStyles lists CSS property names eligible to be copied
	// from a style attribute.
	AllowedCSSStyles []string

	// AllowedSchemes lists URI scheme prefixes, each ending in ":",
	// permitted in href/action values that carry an explicit scheme.
	AllowedSchemes []string
}

// Policy is an immutable whitelist store consulted by a Sanitizer. Build
// one with NewPolicy or DefaultPolicy and do not mutate it afterwards.
type Policy struct {
	tags        map[string]bool
	contentTags map[string]bool
	attrs       map[string]bool
	cssProps    map[string]bool
	schemes     []string
	uriAttrs    map[string]bool
}

var (
	defaultTags = []string{
		"a", "abbr", "b", "blockquote", "br", "center", "code",
		"dd", "div", "dl", "dt", "em", "font",
		"h1", "h2", "h3", "h4", "h5", "h6", "hr",
		"i", "img", "label", "li", "ol", "p", "pre",
		"small", "source", "span", "strong", "sub", "sup",
		"table", "tbody", "td", "th", "thead", "tr",
		"u", "ul", "video",
	}

	// Tags whose children survive but whose own identity does not:
	// wrapper markers pasted in by source applications.
	defaultContentTags = []string{"form", "google-sheets-html-origin"}

	defaultAttributes = []string{
		"align", "color", "controls", "height", "href", "id", "src",
		"style", "target", "title", "type", "width",
	}

	defaultCSSStyles = []string{
		"background-color", "color", "font-size", "font-weight",
		"text-align", "text-decoration", "width",
	}

	defaultSchemes = []string{
		"http:", "https:", "data:", "ftp:", "file:", "mailto:", "tel:",
	}

	defaultURIAttributes = []string{"href", "action"}
)

// DefaultPolicy returns the built-in policy: a safe subset of the markup
// rich-text editors, mail clients, and spreadsheets produce on paste.
func DefaultPolicy() *Policy {
	return NewPolicy(Options{})
}

// NewPolicy builds a Policy from the defaults with opts applied. Supplied
// strings are not validated; an empty non-nil list legally disables its
// whole category.
func NewPolicy(opts Options) *Policy {
	tags := defaultTags
	if opts.AllowedTags != nil {
		tags = opts.AllowedTags
	}
	attrs := defaultAttributes
	if opts.AllowedAttributes != nil {
		attrs = opts.AllowedAttributes
	}
	css := defaultCSSStyles
	if opts.AllowedCSSStyles != nil {
		css = opts.AllowedCSSStyles
	}
	schemes := defaultSchemes
	if opts.AllowedSchemes != nil {
		schemes = opts.AllowedSchemes
	}

	return &Policy{
		tags:        sliceToSet(tags),
		contentTags: sliceToSet(defaultContentTags),
		attrs:       sliceToSet(attrs),
		cssProps:    sliceToSet(css),
		schemes:     append([]string(nil), schemes...),
		uriAttrs:    sliceToSet(defaultURIAttributes),
	}
}

// AllowedTag reports whether elements with the given tag name are kept.
func (p *Policy) AllowedTag(tag string) bool {
	return p.tags[strings.ToLower(tag)]
}

// ContentTag reports whether the tag is a content-passthrough tag: the
// element itself is replaced by a neutral <div> but its children are kept.
func (p *Policy) ContentTag(tag string) bool {
	return p.contentTags[strings.ToLower(tag)]
}

// AllowedAttribute reports whether the named attribute may be copied.
func (p *Policy) AllowedAttribute(name string) bool {
	return p.attrs[strings.ToLower(name)]
}

// AllowedCSSProperty reports whether the named style property may be copied.
func (p *Policy) AllowedCSSProperty(name string) bool {
	return p.cssProps[strings.ToLower(name)]
}

// URIAttribute reports whether the named attribute's value is treated as a
// URI and subjected to the scheme guard.
func (p *Policy) URIAttribute(name string) bool {
	return p.uriAttrs[strings.ToLower(name)]
}

// AllowedScheme reports whether value starts with one of the configured
// scheme prefixes. The match is a literal prefix test: no lowercasing,
// trimming, or entity decoding. Callers who need "HTTP:" accepted must list
// it explicitly.
func (p *Policy) AllowedScheme(value string) bool {
	for _, prefix := range p.schemes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[strings.ToLower(v)] = true
	}
	return m
}
