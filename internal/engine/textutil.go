package engine

import (
	"strings"
	"unicode"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanHTML extracts the visible text of an HTML fragment and collapses whitespace.
// Plain text passes through unchanged apart from whitespace collapsing.
// The result is a fixpoint: decoded text that would read as markup again
// (for example "&lt;script&gt;") is returned with & and < escaped.
func CleanHTML(s string) string {
	out := htmlText(s)
	if out != s && htmlText(out) != out {
		out = textEscaper.Replace(out)
	}
	return out
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

func htmlText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseSpace(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return CollapseSpace(s)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "br" || n.Data == "p" || n.Data == "li") {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return CollapseSpace(b.String())
}

// CollapseSpace replaces runs of Unicode whitespace (NBSP included) with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldText lowercases s and strips diacritics, so "Montréal" and "montreal" compare equal.
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (accented French place names).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
