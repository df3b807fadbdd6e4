package engine

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<b>bold</b> text", "bold text"},
		{"plain   text\n", "plain text"},
		{`<a href="url">link</a>`, "link"},
		{"<p>one</p><p>two</p>", "one two"},
		{"<style>p{}</style>keep<script>drop()</script>", "keep"},
		{"Fish &amp; Chips", "Fish & Chips"},
		{"Use &lt;script&gt; tags to embed code", "Use &lt;script> tags to embed code"},
		{"", ""},
	}

	for _, tt := range tests {
		got := CleanHTML(tt.input)
		if got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanHTML_Fixpoint(t *testing.T) {
	inputs := []string{
		"Use &lt;script&gt; tags to embed code",
		"<p>Write &lt;b&gt;bold&lt;/b&gt; &amp;amp; more</p>",
		"Fish &amp; Chips",
		"AT&T field tech",
		"<ul><li>one</li><li>two</li></ul>",
		"a &lt; b",
	}
	for _, in := range inputs {
		once := CleanHTML(in)
		if twice := CleanHTML(once); twice != once {
			t.Errorf("CleanHTML(%q) = %q, second pass %q", in, once, twice)
		}
	}
}

func TestFoldText(t *testing.T) {
	tests := map[string]string{
		"Montréal, QC":          "montreal, qc",
		"Trois-Rivières":        "trois-rivieres",
		"Saint-Jérôme":          "saint-jerome",
		"ALREADY plain":         "already plain",
		"Île-du-Prince-Édouard": "ile-du-prince-edouard",
	}
	for in, want := range tests {
		if got := FoldText(in); got != want {
			t.Errorf("FoldText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	s := strings.Repeat("é", 50)
	got := TruncateRunes(s, 10, "...")
	if n := utf8.RuneCountInString(got); n > 13 {
		t.Errorf("truncated to %d runes, want at most 13", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
	if short := TruncateRunes("short", 10, "..."); short != "short" {
		t.Errorf("short string changed: %q", short)
	}
}
