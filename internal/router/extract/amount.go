// Package extract holds the pure argument extractors the router composes.
// Each extractor inspects raw utterance text independently, so new
// extractors can be added without touching the classifier.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`\$\s?\d+(?:\.\d+)?|\b\d+(?:\.\d+)?\b`)

// Amount finds the first monetary-looking token (optional leading "$",
// digits, optional decimal fraction). The matched token is returned so the
// caller can strip it from the residual description.
func Amount(text string) (value float64, token string, ok bool) {
	token = amountPattern.FindString(text)
	if token == "" {
		return 0, "", false
	}

	numeric := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "$"))
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, "", false
	}

	return value, token, true
}
