package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextPolicy decides how user-controlled strings (message text, contact
// names, filenames, error descriptions) are placed into exported HTML.
type TextPolicy int

const (
	// TextEscape HTML-escapes every substituted string.
	TextEscape TextPolicy = iota
	// TextRaw substitutes strings verbatim. Markup in a message is live in
	// the exported document.
	TextRaw
	// TextSanitize keeps inline markup in message text (links, emphasis,
	// code, line breaks) and strips everything else. Open tags are closed so
	// message text cannot leave its container. Names and filenames are
	// still escaped.
	TextSanitize
)

var textPolicyNames = map[TextPolicy]string{
	TextEscape:   "escape",
	TextRaw:      "raw",
	TextSanitize: "sanitize",
}

func (p TextPolicy) String() string {
	if name, ok := textPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("TextPolicy(%d)", int(p))
}

// ParseTextPolicy accepts "escape", "raw" or "sanitize".
func ParseTextPolicy(s string) (TextPolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for p, name := range textPolicyNames {
		if name == normalized {
			return p, nil
		}
	}
	return TextEscape, fmt.Errorf("invalid text policy %q: must be one of escape, raw, sanitize", s)
}

var inlinePolicy = newInlinePolicy()

// newInlinePolicy allows phrasing elements only. Block and list elements are
// stripped so a message cannot close its own <li> or open another.
func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "code", "s", "u", "br")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// textContainer is the element message text is rendered inside.
var textContainer = &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}

// sanitize strips disallowed markup and balances what is left by parsing it
// as the content of a div and rendering the resulting nodes.
func sanitize(s string) string {
	clean := inlinePolicy.Sanitize(s)

	nodes, err := xhtml.ParseFragment(strings.NewReader(clean), textContainer)
	if err != nil {
		return html.EscapeString(s)
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := xhtml.Render(&b, n); err != nil {
			return html.EscapeString(s)
		}
	}
	return b.String()
}

// body prepares message text.
func (p TextPolicy) body(s string) string {
	switch p {
	case TextRaw:
		return s
	case TextSanitize:
		return sanitize(s)
	default:
		return html.EscapeString(s)
	}
}

// plain prepares a name, filename or error description. Only TextRaw leaves
// it untouched.
func (p TextPolicy) plain(s string) string {
	if p == TextRaw {
		return s
	}
	return html.EscapeString(s)
}
