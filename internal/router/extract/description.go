package extract

import (
	"regexp"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Filler words trimmed from the edges of the residual description.
var fillerWords = map[string]bool{
	"for": true, "on": true, "of": true, "to": true, "a": true, "an": true,
	"the": true, "my": true, "i": true, "at": true, "in": true,
	"please": true, "by": true, "me": true,
}

// Residual returns what is left of the text after the given tokens (the
// matched amount token, date phrase, intent keyword, user-id clause) are
// removed, with whitespace collapsed and edge filler words trimmed. This
// is the default description/content value.
func Residual(text string, remove ...string) string {
	out := text
	for _, token := range remove {
		if token == "" {
			continue
		}
		if idx := indexFold(out, token); idx >= 0 {
			out = out[:idx] + " " + out[idx+len(token):]
		}
	}

	out = whitespacePattern.ReplaceAllString(out, " ")
	words := strings.Fields(out)

	for len(words) > 0 && fillerWords[normalize(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && fillerWords[normalize(words[len(words)-1])] {
		words = words[:len(words)-1]
	}

	return strings.Join(words, " ")
}

func normalize(word string) string {
	return strings.ToLower(strings.Trim(word, ".,!?"))
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
