package router

import (
	"regexp"
	"strings"
	"time"

	"assistant-agents/internal/router/extract"
)

// Arguments is the typed argument set extracted for one capability call.
// Collaborators read only the arguments they declare; everything else is
// ignored.
type Arguments struct {
	UserID      string   `json:"user_id,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    string   `json:"category,omitempty"`
	Date        string   `json:"date,omitempty"` // YYYY-MM-DD
	EntityID    string   `json:"entity_id,omitempty"`
	Description string   `json:"description,omitempty"`
	Updates     string   `json:"updates,omitempty"` // raw JSON update payload
}

var updatesPayloadPattern = regexp.MustCompile(`\{.*\}`)

// ExtractArguments runs every extractor over the utterance and assembles
// the argument set for a capability. Matching uses the lower-cased copy;
// the original casing is preserved in free-text fields.
func ExtractArguments(capability Capability, utterance, defaultUserID string, now time.Time) Arguments {
	lower := strings.ToLower(utterance)

	args := Arguments{
		UserID:   extract.UserID(utterance, defaultUserID),
		Category: extract.Category(lower),
	}

	var amountToken string
	if v, token, ok := extract.Amount(utterance); ok {
		args.Amount = &v
		amountToken = token
	}

	var datePhrase string
	args.Date, datePhrase = extract.Date(utterance, now)

	var idClause string
	if id, ok := extract.EntityID(utterance); ok {
		args.EntityID = id
		idClause = "id: " + id
	}

	if payload := updatesPayloadPattern.FindString(utterance); payload != "" {
		args.Updates = payload
	}

	// Residual free text: the utterance minus every recognized token.
	spec := Registry[capability]
	remove := []string{amountToken, datePhrase, idClause, args.Updates}
	remove = append(remove, matchedWords(lower,
		updateIntentWords, deleteIntentWords, listIntentWords,
		addIntentWords, summaryWords)...)
	remove = append(remove, matchedWords(lower, domainKeywords[spec.Domain])...)
	args.Description = extract.Residual(utterance, remove...)

	return args
}

// MissingRequired returns the first required argument the extraction
// could not supply, or "" when the capability can be dispatched.
func MissingRequired(capability Capability, args Arguments) string {
	for _, req := range Registry[capability].Required {
		switch req {
		case ArgAmount, ArgTargetValue:
			if args.Amount == nil {
				return req
			}
		case ArgEntityID:
			if args.EntityID == "" {
				return req
			}
		case ArgDescription:
			if args.Description == "" {
				return req
			}
		}
	}
	return ""
}
