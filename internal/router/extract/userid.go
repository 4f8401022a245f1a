package extract

import "regexp"

// Patterns tried in order; the first match wins. Token charset is
// alphanumerics, underscore, hyphen.
var userIDPatterns = []*regexp.Regexp{
	// "for user: user123" or "user: user123"
	regexp.MustCompile(`(?i)(?:for\s+)?user\s*:\s*([a-zA-Z0-9_-]+)`),
	// "user123's expenses"
	regexp.MustCompile(`(?i)([a-zA-Z0-9_-]+)'s\s+(?:expenses?|spending|costs?)`),
	// "my expenses as user123" or "expenses for user123"
	regexp.MustCompile(`(?i)(?:my\s+)?expenses?\s+(?:as|for)\s+([a-zA-Z0-9_-]+)`),
}

// Words that legitimately follow "expenses for ..." without being an id.
var userIDStopWords = map[string]bool{
	"last": true, "this": true, "next": true, "the": true,
	"today": true, "yesterday": true, "tomorrow": true,
	"food": true, "all": true, "me": true,
}

// UserID pulls a user identifier out of the text, falling back to the
// configured default when no pattern matches.
func UserID(text, defaultUserID string) string {
	for _, re := range userIDPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if !userIDStopWords[normalize(m[1])] {
				return m[1]
			}
		}
	}
	return defaultUserID
}
