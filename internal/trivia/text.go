package trivia

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanText strips markup and entity escapes from API text and collapses
// whitespace. jService clues routinely carry <i> tags and backslash-escaped
// quotes.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if breaksWords[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

// inline tags such as <i> join the surrounding text; these don't
var breaksWords = map[string]bool{"br": true, "p": true, "div": true, "li": true}

func collapse(s string) string {
	s = strings.NewReplacer(`\"`, `"`, `\'`, `'`).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase formats a category title for display: "world capitals" becomes
// "World Capitals".
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
