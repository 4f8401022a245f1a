package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// SearchIndex mirrors notes for full-text search. Indexing is
// best-effort: Postgres stays the source of truth.
type SearchIndex interface {
	IndexDocument(ctx context.Context, index, id string, doc interface{}) error
	DeleteDocument(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]interface{}) ([]json.RawMessage, error)
}

var updateSchema = map[string]interface{}{
	"type":                 "object",
	"minProperties":        1,
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"content":      map[string]interface{}{"type": "string", "minLength": 1},
		"is_completed": map[string]interface{}{"type": "boolean"},
		"due_date":     map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
	},
}

type Service struct {
	config *Config
	store  *Store
	search SearchIndex
	logger logger.Logger
	now    func() time.Time
}

func NewService(config *Config, store *Store, search SearchIndex, log logger.Logger) *Service {
	return &Service{
		config: config,
		store:  store,
		search: search,
		logger: log.WithFields(map[string]interface{}{"domain": "notes"}),
		now:    time.Now,
	}
}

func (s *Service) AddNote(ctx context.Context, args router.Arguments) (string, error) {
	n := &models.Note{
		NoteID:    uuid.NewString(),
		UserID:    args.UserID,
		Content:   args.Description,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, n); err != nil {
		return "", err
	}
	s.mirror(ctx, n)

	return fmt.Sprintf("✅ Added note: %q. id: %s", n.Content, n.NoteID), nil
}

func (s *Service) ListNotes(ctx context.Context, args router.Arguments) (string, error) {
	notes, err := s.store.List(ctx, args.UserID)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "You have no notes yet.", nil
	}
	return formatNotes("📝 Your notes:", notes), nil
}

// SearchNotes queries the search index and falls back to a Postgres
// substring match when the index is unreachable.
func (s *Service) SearchNotes(ctx context.Context, args router.Arguments) (string, error) {
	term := args.Description

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"match": map[string]interface{}{"content": term},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"user_id": args.UserID},
				},
			},
		},
	}

	hits, err := s.search.Search(ctx, s.config.Index, query)
	if err != nil {
		s.logger.Warn("search index unavailable, falling back to database", map[string]interface{}{
			"code":  string(apperrors.ErrCodeSearchQueryFailed),
			"error": err.Error(),
		})
		notes, dbErr := s.store.MatchContent(ctx, args.UserID, term)
		if dbErr != nil {
			return "", dbErr
		}
		if len(notes) == 0 {
			return fmt.Sprintf("No notes matching %q.", term), nil
		}
		return formatNotes(fmt.Sprintf("🔍 Notes matching %q:", term), notes), nil
	}

	var notes []models.Note
	for _, hit := range hits {
		var n models.Note
		if err := json.Unmarshal(hit, &n); err != nil {
			continue
		}
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return fmt.Sprintf("No notes matching %q.", term), nil
	}
	return formatNotes(fmt.Sprintf("🔍 Notes matching %q:", term), notes), nil
}

// UpdateNote applies an inline JSON payload; with no payload it marks the
// note completed, which covers the common "mark it done" phrasing.
func (s *Service) UpdateNote(ctx context.Context, args router.Arguments) (string, error) {
	updates := map[string]interface{}{"is_completed": true}
	if args.Updates != "" {
		var problem string
		updates, problem = parseUpdatePayload(args.Updates)
		if problem != "" {
			stdErr := apperrors.NewMalformedUpdatePayload(problem)
			s.logger.Warn("rejected note update payload", map[string]interface{}{
				"code":   string(stdErr.Code),
				"noteId": args.EntityID,
			})
			return problem, nil
		}
	}

	affected, err := s.store.Update(ctx, args.UserID, args.EntityID, updates)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No note with id %s found for you.", args.EntityID), nil
	}

	if n, err := s.store.Get(ctx, args.UserID, args.EntityID); err == nil {
		s.mirror(ctx, n)
	}
	return fmt.Sprintf("✅ Updated note %s.", args.EntityID), nil
}

func (s *Service) DeleteNote(ctx context.Context, args router.Arguments) (string, error) {
	affected, err := s.store.Delete(ctx, args.UserID, args.EntityID)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No note with id %s found for you.", args.EntityID), nil
	}

	if err := s.search.DeleteDocument(ctx, s.config.Index, args.EntityID); err != nil {
		s.logger.Warn("failed to remove note from search index", map[string]interface{}{
			"noteId": args.EntityID,
			"error":  err.Error(),
		})
	}
	return fmt.Sprintf("✅ Deleted note %s.", args.EntityID), nil
}

func (s *Service) mirror(ctx context.Context, n *models.Note) {
	if err := s.search.IndexDocument(ctx, s.config.Index, n.NoteID, n); err != nil {
		s.logger.Warn("failed to index note", map[string]interface{}{
			"noteId": n.NoteID,
			"error":  err.Error(),
		})
	}
}

func formatNotes(header string, notes []models.Note) string {
	var b strings.Builder
	b.WriteString(header)
	for _, n := range notes {
		status := "pending"
		if n.IsCompleted {
			status = "done"
		}
		fmt.Fprintf(&b, "\n  - [%s] %s [id: %s]", status, n.Content, n.NoteID)
		if n.DueDate != "" {
			fmt.Fprintf(&b, " (due %s)", n.DueDate)
		}
	}
	return b.String()
}

func parseUpdatePayload(payload string) (map[string]interface{}, string) {
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
