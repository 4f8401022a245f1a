package extract

import "regexp"

var entityIDPattern = regexp.MustCompile(`(?i)\bid\s*:\s*([a-zA-Z0-9_-]+)`)

// EntityID looks for an explicit "id: <token>" / "ID: <token>" marker.
// Update and delete capabilities cannot proceed without one.
func EntityID(text string) (string, bool) {
	if m := entityIDPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}
