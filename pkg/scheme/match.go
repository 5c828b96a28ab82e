package scheme

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest token considered when matching; shorter
// tokens ("pm", "of", "me") match too much to be useful.
const minTokenRunes = 3

// Match returns the first scheme in catalog order that the query refers to,
// or nil. A scheme matches when a query token of at least three runes occurs
// in its name or description, or when the query contains one of its keywords.
func (c *Catalog) Match(query string) *Scheme {
	lower := strings.ToLower(query)
	tokens := Tokens(lower)
	if len(tokens) == 0 {
		return nil
	}

	for i := range c.schemes {
		s := &c.schemes[i]
		if matches(s, lower, tokens) {
			out := *s
			return &out
		}
	}
	return nil
}

// Tokens splits text on whitespace, lowercases, trims surrounding
// punctuation and drops tokens shorter than three runes.
func Tokens(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
		})
		if utf8.RuneCountInString(f) < minTokenRunes {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matches(s *Scheme, lowerQuery string, tokens []string) bool {
	name := strings.ToLower(s.Name)
	desc := strings.ToLower(s.Description)
	for _, tok := range tokens {
		if strings.Contains(name, tok) || strings.Contains(desc, tok) {
			return true
		}
	}
	for _, kw := range s.Keywords {
		if kw != "" && strings.Contains(lowerQuery, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
