package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

var updateSchema = map[string]interface{}{
	"type":                 "object",
	"minProperties":        1,
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"title":            map[string]interface{}{"type": "string", "minLength": 1},
		"date":             map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"time":             map[string]interface{}{"type": "string", "pattern": `^\d{2}:\d{2}$`},
		"duration_minutes": map[string]interface{}{"type": "integer", "minimum": 5},
		"location":         map[string]interface{}{"type": "string"},
		"description":      map[string]interface{}{"type": "string"},
		"status": map[string]interface{}{
			"type": "string",
			"enum": []string{models.MeetingStatusScheduled, models.MeetingStatusCompleted, models.MeetingStatusCancelled},
		},
	},
}

// timeOfDayPattern matches "2pm", "2:30 pm", "14:00".
var timeOfDayPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

const defaultStartTime = "09:00"

type Service struct {
	config   *Config
	store    *Store
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewService(config *Config, store *Store, notifier Notifier, log logger.Logger) *Service {
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	return &Service{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"domain": "meeting"}),
		now:      time.Now,
	}
}

func (s *Service) AddMeeting(ctx context.Context, args router.Arguments) (string, error) {
	title, startTime := splitTimeOfDay(args.Description)
	if title == "" {
		title = "Meeting"
	}

	nowUTC := s.now().UTC()
	m := &models.Meeting{
		MeetingID:       uuid.NewString(),
		UserID:          args.UserID,
		Title:           title,
		Date:            args.Date,
		Time:            startTime,
		DurationMinutes: s.config.DefaultDurationMinutes,
		Status:          models.MeetingStatusScheduled,
		CreatedAt:       nowUTC,
		UpdatedAt:       nowUTC,
	}

	overlapping, err := s.store.Overlapping(ctx, m.UserID, m.Date, m.Time, endTime(m.Time, m.DurationMinutes))
	if err != nil {
		return "", err
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return "", err
	}
	s.notifier.MeetingScheduled(ctx, m)

	response := fmt.Sprintf("✅ Scheduled %q on %s at %s (%d min). id: %s",
		m.Title, m.Date, m.Time, m.DurationMinutes, m.MeetingID)
	if len(overlapping) > 0 {
		response += fmt.Sprintf("\n⚠️ This overlaps with %q at %s.", overlapping[0].Title, overlapping[0].Time)
	}
	return response, nil
}

func (s *Service) ListMeetings(ctx context.Context, args router.Arguments) (string, error) {
	meetings, err := s.store.List(ctx, models.MeetingFilters{
		UserID:    args.UserID,
		StartDate: args.Date,
		Status:    models.MeetingStatusScheduled,
	})
	if err != nil {
		return "", err
	}
	if len(meetings) == 0 {
		return fmt.Sprintf("No meetings scheduled from %s onward.", args.Date), nil
	}
	return formatMeetings(fmt.Sprintf("📅 Meetings from %s:", args.Date), meetings), nil
}

func (s *Service) SearchMeetings(ctx context.Context, args router.Arguments) (string, error) {
	meetings, err := s.store.MatchTitle(ctx, args.UserID, args.Description)
	if err != nil {
		return "", err
	}
	if len(meetings) == 0 {
		return fmt.Sprintf("No meetings matching %q.", args.Description), nil
	}
	return formatMeetings(fmt.Sprintf("🔍 Meetings matching %q:", args.Description), meetings), nil
}

func (s *Service) UpdateMeeting(ctx context.Context, args router.Arguments) (string, error) {
	updates, problem := parseUpdatePayload(args.Updates)
	if problem != "" {
		stdErr := apperrors.NewMalformedUpdatePayload(problem)
		s.logger.Warn("rejected meeting update payload", map[string]interface{}{
			"code":      string(stdErr.Code),
			"meetingId": args.EntityID,
		})
		return problem, nil
	}

	affected, err := s.store.Update(ctx, args.UserID, args.EntityID, updates)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No meeting with id %s found for you.", args.EntityID), nil
	}
	return fmt.Sprintf("✅ Updated meeting %s.", args.EntityID), nil
}

// DeleteMeeting cancels rather than erases, keeping the calendar history.
func (s *Service) DeleteMeeting(ctx context.Context, args router.Arguments) (string, error) {
	affected, err := s.store.Cancel(ctx, args.UserID, args.EntityID)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No active meeting with id %s found for you.", args.EntityID), nil
	}
	return fmt.Sprintf("✅ Cancelled meeting %s.", args.EntityID), nil
}

// Conflicts reports pairwise overlaps among scheduled meetings from the
// given date onward.
func (s *Service) Conflicts(ctx context.Context, args router.Arguments) (string, error) {
	meetings, err := s.store.List(ctx, models.MeetingFilters{
		UserID:    args.UserID,
		StartDate: args.Date,
		Status:    models.MeetingStatusScheduled,
	})
	if err != nil {
		return "", err
	}

	var conflicts []string
	for i := 0; i < len(meetings); i++ {
		for j := i + 1; j < len(meetings); j++ {
			a, b := meetings[i], meetings[j]
			if a.Date != b.Date {
				continue
			}
			if a.Time < endTime(b.Time, b.DurationMinutes) && b.Time < endTime(a.Time, a.DurationMinutes) {
				conflicts = append(conflicts, fmt.Sprintf(
					"  - %s: %q at %s overlaps %q at %s", a.Date, a.Title, a.Time, b.Title, b.Time))
			}
		}
	}

	if len(conflicts) == 0 {
		return fmt.Sprintf("No meeting conflicts from %s onward.", args.Date), nil
	}
	return fmt.Sprintf("⚠️ Meeting conflicts:\n%s", strings.Join(conflicts, "\n")), nil
}

// splitTimeOfDay pulls a start time out of free text, returning the rest
// as the meeting title.
func splitTimeOfDay(text string) (title, startTime string) {
	startTime = defaultStartTime

	for _, match := range timeOfDayPattern.FindAllStringSubmatchIndex(text, -1) {
		full := text[match[0]:match[1]]
		groups := timeOfDayPattern.FindStringSubmatch(full)

		hour, _ := strconv.Atoi(groups[1])
		minute := 0
		if groups[2] != "" {
			minute, _ = strconv.Atoi(groups[2])
		}
		meridiem := strings.ToLower(groups[3])

		// A bare number without minutes or am/pm is not a time.
		if meridiem == "" && groups[2] == "" {
			continue
		}
		if meridiem == "pm" && hour < 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		if hour > 23 || minute > 59 {
			continue
		}

		startTime = fmt.Sprintf("%02d:%02d", hour, minute)
		title = strings.TrimSpace(strings.Trim(text[:match[0]]+text[match[1]:], " ,."))
		title = strings.TrimSuffix(title, " at")
		return title, startTime
	}

	return strings.TrimSpace(text), startTime
}

func endTime(start string, durationMinutes int) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return start
	}
	return t.Add(time.Duration(durationMinutes) * time.Minute).Format("15:04")
}

func formatMeetings(header string, meetings []models.Meeting) string {
	var b strings.Builder
	b.WriteString(header)
	for _, m := range meetings {
		fmt.Fprintf(&b, "\n  - %s %s: %q (%d min, %s) [id: %s]",
			m.Date, m.Time, m.Title, m.DurationMinutes, m.Status, m.MeetingID)
	}
	return b.String()
}

func parseUpdatePayload(payload string) (map[string]interface{}, string) {
	if payload == "" {
		return nil, "❌ To update a meeting, include the change as JSON, for example: update meeting id: 42 {\"time\": \"15:00\"}"
	}

	var updates map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &updates); err != nil {
		return nil, fmt.Sprintf("❌ The update payload is not valid JSON: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(updateSchema),
		gojsonschema.NewGoLoader(updates),
	)
	if err != nil {
		return nil, fmt.Sprintf("❌ Could not validate the update payload: %v", err)
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, fmt.Sprintf("❌ The update payload is invalid: %s", strings.Join(reasons, "; "))
	}
	return updates, ""
}
