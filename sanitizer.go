package htmlwash

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxDepth bounds the recursion; subtrees nested deeper than this are
// dropped rather than risking stack exhaustion on crafted input.
const maxDepth = 128

// Inline wrappers that are pruned when filtering leaves them with no
// serialized content.
var prunableInline = map[string]bool{
	"span": true, "b": true, "i": true, "u": true, "em": true, "strong": true,
}

// Sanitizer rewrites untrusted HTML against a Policy, producing output that
// contains only whitelisted tags, attributes, style properties, and URI
// schemes. A Sanitizer is safe for concurrent use once constructed.
type Sanitizer struct {
	policy *Policy
	log    *zap.SugaredLogger
}

// New returns a Sanitizer using p. If p is nil, DefaultPolicy is used.
func New(p *Policy) *Sanitizer {
	if p == nil {
		p = DefaultPolicy()
	}
	return &Sanitizer{policy: p, log: zap.NewNop().Sugar()}
}

// SetLogger installs a diagnostic logger. Diagnostics never change output;
// they only report parse-guard trips and ignored selectors. Call before the
// Sanitizer is shared between goroutines.
func (s *Sanitizer) SetLogger(logger *zap.SugaredLogger) {
	if logger != nil {
		s.log = logger
	}
}

// Policy returns the policy the Sanitizer was built with.
func (s *Sanitizer) Policy() *Policy {
	return s.policy
}

// Sanitize rewrites input and returns the sanitized markup. It always
// returns a string: malformed or hostile input degrades to dropped nodes or
// an empty result, never an error.
func (s *Sanitizer) Sanitize(input string) string {
	return s.SanitizeMatching(input, "")
}

// SanitizeMatching is Sanitize with an extra CSS selector that allow-lists
// one additional kind of element beyond the policy. The selector is honored
// only for the top-level elements of the input, not for their descendants.
// A selector that fails to compile is ignored.
func (s *Sanitizer) SanitizeMatching(input, selector string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if !strings.Contains(strings.ToLower(input), "<body") {
		input = "<body>" + input + "</body>"
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		s.log.Debugw("parse failed, discarding input", "error", err)
		return ""
	}

	// The parser may hand back a tree without the container we expect;
	// fail closed rather than walk an arbitrary root.
	body := findBody(doc)
	if body == nil || body.Type != html.ElementNode || body.DataAtom != atom.Body {
		s.log.Debugw("parse guard: no body container in parsed tree")
		return ""
	}

	// Some editors represent an "empty" document as a single <br>.
	if only := body.FirstChild; only != nil && only.NextSibling == nil &&
		only.Type == html.ElementNode && only.DataAtom == atom.Br {
		return ""
	}

	var extra cascadia.Selector
	if selector != "" {
		sel, err := cascadia.Compile(selector)
		if err != nil {
			s.log.Debugw("ignoring selector", "selector", selector, "error", err)
		} else {
			extra = sel
		}
	}

	fab := newFabric()
	if fab.element == nil || fab.text == nil {
		s.log.Debugw("parse guard: node fabrication unavailable")
		return ""
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		out := s.copyNode(fab, c, 0, extra)
		if out == nil {
			continue
		}
		if err := html.Render(&buf, out); err != nil {
			s.log.Debugw("render failed, dropping node", "error", err)
		}
	}
	return normalizeBreaks(buf.String())
}

// fabric creates every node of the output tree. It is scoped to a single
// sanitize call so no output node is ever shared between calls or with the
// input tree.
type fabric struct {
	element func(tag string) *html.Node
	text    func(data string) *html.Node
}

func newFabric() *fabric {
	return &fabric{
		element: func(tag string) *html.Node {
			return &html.Node{
				Type:     html.ElementNode,
				Data:     tag,
				DataAtom: atom.Lookup([]byte(tag)),
			}
		},
		text: func(data string) *html.Node {
			return &html.Node{Type: html.TextNode, Data: data}
		},
	}
}

// copyNode builds a sanitized copy of n, or returns nil when n and its
// whole subtree are dropped. extra applies only at depth 0.
func (s *Sanitizer) copyNode(fab *fabric, n *html.Node, depth int, extra cascadia.Selector) *html.Node {
	if depth > maxDepth {
		return nil
	}

	switch n.Type {
	case html.TextNode:
		return fab.text(n.Data)

	case html.ElementNode:
		passthrough := s.policy.ContentTag(n.Data)
		keep := passthrough || s.policy.AllowedTag(n.Data) ||
			(extra != nil && extra(n))
		if !keep {
			return nil
		}

		var out *html.Node
		if passthrough {
			out = fab.element("div")
		} else {
			out = fab.element(n.Data)
		}
		s.copyAttributes(n, out)

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := s.copyNode(fab, c, depth+1, nil); child != nil {
				out.AppendChild(child)
			}
		}

		if prunableInline[out.Data] && strings.TrimSpace(innerContent(out)) == "" {
			return nil
		}
		return out

	default:
		// Comments, doctypes, and anything else contribute nothing.
		return nil
	}
}

func (s *Sanitizer) copyAttributes(src, dst *html.Node) {
	for _, a := range src.Attr {
		if !s.policy.AllowedAttribute(a.Key) {
			continue
		}
		switch {
		case strings.EqualFold(a.Key, "style"):
			if v := s.filterStyle(a.Val); v != "" {
				dst.Attr = append(dst.Attr, html.Attribute{Key: "style", Val: v})
			}
		case s.policy.URIAttribute(a.Key):
			if strings.Contains(a.Val, ":") && !s.policy.AllowedScheme(a.Val) {
				continue
			}
			dst.Attr = append(dst.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		default:
			dst.Attr = append(dst.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
	}
}

// filterStyle rebuilds a style attribute from its declaration list, keeping
// only whitelisted property names in their declared order. An empty result
// means the attribute is omitted entirely.
func (s *Sanitizer) filterStyle(raw string) string {
	// douceur loses the value of a final declaration that is not
	// terminated by a semicolon, so terminate before parsing.
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasSuffix(raw, ";") {
		raw += ";"
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, d := range decls {
		if !s.policy.AllowedCSSProperty(d.Property) || d.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
	}
	return b.String()
}

// StripTags removes all markup from input and returns the plain text.
// Entity references are decoded. A string that cannot be parsed yields "".
func StripTags(input string) string {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return buf.String()
}

func innerContent(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}
