package router

import (
	"fmt"
	"strings"
)

const multiSourceNote = "(Results gathered from multiple sources.)"

// compose merges collaborator results into one response. A single result
// passes through untouched; several results get labelled sections in the
// order the domains matched, plus a trailing multi-source note.
func compose(results []domainResult) string {
	if len(results) == 1 {
		return results[0].text
	}

	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("## %s\n%s", res.domain.Label(), res.text))
	}
	b.WriteString("\n\n")
	b.WriteString(multiSourceNote)
	return b.String()
}

// clarificationText asks for the one argument the capability cannot run
// without. It replaces the whole response; nothing is dispatched.
func clarificationText(capability Capability, field string) string {
	switch field {
	case ArgAmount:
		return "I need an amount to record that expense. For example: \"I spent $12.50 on coffee\"."
	case ArgTargetValue:
		return "I need a target value for that goal. For example: \"set a goal to drink 8 glasses of water\"."
	case ArgEntityID:
		switch Registry[capability].Domain {
		case DomainNotes:
			return "Which note do you mean? Include its id, for example: \"delete note id: abc123\"."
		case DomainMeeting:
			return "Which meeting do you mean? Include its id, for example: \"cancel meeting id: 42\"."
		case DomainHealth:
			return "Which health goal do you mean? Include its id, for example: \"delete goal id: abc123\"."
		default:
			return "Which record do you mean? Include its id, for example: \"update expense id: 17 {\\\"amount\\\": 20}\"."
		}
	case ArgDescription:
		switch capability {
		case CapSearchNotes:
			return "What should I search your notes for?"
		case CapSearchMeetings:
			return "What should I search your meetings for?"
		case CapAddNote:
			return "What should the note say?"
		case CapLogFood:
			return "What did you eat? For example: \"log that I ate oatmeal for breakfast\"."
		case CapAddMeeting:
			return "What is the meeting about? Include a title, for example: \"schedule a standup tomorrow\"."
		default:
			return "Could you add a few more details so I know what to record?"
		}
	}
	return fmt.Sprintf("I need a value for %s before I can do that.", field)
}

// helpText is the terminal response for utterances that match nothing.
// It doubles as the greeting response.
func helpText() string {
	return strings.Join([]string{
		"I can help with expenses, notes, health tracking, and meetings. Try one of these:",
		"",
		"Expenses:",
		"  - \"I spent $12.50 on coffee\"",
		"  - \"show my expenses for last week\"",
		"  - \"expense summary for this month\"",
		"  - \"what's my budget status\"",
		"",
		"Notes:",
		"  - \"add a note to buy groceries\"",
		"  - \"show my notes\"",
		"  - \"search notes for groceries\"",
		"",
		"Health & Diet:",
		"  - \"set a goal to drink 8 glasses of water\"",
		"  - \"show my health goals\"",
		"  - \"log that I ate a salad for lunch\"",
		"  - \"show my food log\"",
		"",
		"Meetings:",
		"  - \"schedule a meeting with Sam tomorrow at 2pm\"",
		"  - \"list my meetings\"",
		"  - \"any meeting conflicts this week?\"",
	}, "\n")
}
