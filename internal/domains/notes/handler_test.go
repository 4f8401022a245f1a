package notes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

// fakeIndex implements SearchIndex in memory.
type fakeIndex struct {
	docs    map[string]interface{}
	hits    []json.RawMessage
	err     error
	deleted []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]interface{})}
}

func (f *fakeIndex) IndexDocument(ctx context.Context, index, id string, doc interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.docs[id] = doc
	return nil
}

func (f *fakeIndex) DeleteDocument(ctx context.Context, index, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, index string, query map[string]interface{}) ([]json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func newTestHandler(t *testing.T, index SearchIndex) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := NewService(DefaultConfig(), NewStore(db), index, logger.NewTestLogger(t))
	service.now = func() time.Time { return testNow }
	return NewHandler(service, logger.NewTestLogger(t)), mock
}

func noteColumns() []string {
	return []string{"note_id", "user_id", "content", "is_completed", "due_date", "created_at"}
}

func TestHandler_AddNote(t *testing.T) {
	index := newFakeIndex()
	h, mock := newTestHandler(t, index)

	mock.ExpectExec("INSERT INTO notes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapAddNote, router.Arguments{
		UserID:      "default_user",
		Description: "buy groceries",
	})

	require.NoError(t, err)
	assert.Contains(t, got, `✅ Added note: "buy groceries"`)
	assert.Len(t, index.docs, 1, "new notes are mirrored into the search index")
}

func TestHandler_AddNote_IndexFailureIsTolerated(t *testing.T) {
	index := newFakeIndex()
	index.err = errors.New("index down")
	h, mock := newTestHandler(t, index)

	mock.ExpectExec("INSERT INTO notes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapAddNote, router.Arguments{
		UserID:      "default_user",
		Description: "buy groceries",
	})

	require.NoError(t, err, "the database write succeeded, so the note is saved")
	assert.Contains(t, got, "✅ Added note")
}

func TestHandler_ListNotes(t *testing.T) {
	h, mock := newTestHandler(t, newFakeIndex())

	rows := sqlmock.NewRows(noteColumns()).
		AddRow("n1", "default_user", "buy groceries", false, nil, testNow).
		AddRow("n2", "default_user", "water plants", true, "2025-06-20", testNow)

	mock.ExpectQuery("FROM notes").
		WithArgs("default_user").
		WillReturnRows(rows)

	got, err := h.Execute(context.Background(), router.CapListNotes, router.Arguments{
		UserID: "default_user",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "[pending] buy groceries [id: n1]")
	assert.Contains(t, got, "[done] water plants [id: n2] (due 2025-06-20)")
}

func TestHandler_SearchNotes_UsesIndex(t *testing.T) {
	index := newFakeIndex()
	hit, _ := json.Marshal(models.Note{NoteID: "n1", UserID: "default_user", Content: "buy groceries"})
	index.hits = []json.RawMessage{hit}
	h, _ := newTestHandler(t, index)

	got, err := h.Execute(context.Background(), router.CapSearchNotes, router.Arguments{
		UserID:      "default_user",
		Description: "groceries",
	})

	require.NoError(t, err)
	assert.Contains(t, got, `🔍 Notes matching "groceries"`)
	assert.Contains(t, got, "buy groceries")
}

func TestHandler_SearchNotes_FallsBackToDatabase(t *testing.T) {
	index := newFakeIndex()
	index.err = errors.New("index down")
	h, mock := newTestHandler(t, index)

	rows := sqlmock.NewRows(noteColumns()).
		AddRow("n1", "default_user", "buy groceries", false, nil, testNow)

	mock.ExpectQuery("content ILIKE").
		WithArgs("default_user", "%groceries%").
		WillReturnRows(rows)

	got, err := h.Execute(context.Background(), router.CapSearchNotes, router.Arguments{
		UserID:      "default_user",
		Description: "groceries",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "buy groceries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_UpdateNote_DefaultsToCompleting(t *testing.T) {
	h, mock := newTestHandler(t, newFakeIndex())

	mock.ExpectExec("UPDATE notes SET is_completed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM notes").
		WithArgs("default_user", "n1").
		WillReturnRows(sqlmock.NewRows(noteColumns()).
			AddRow("n1", "default_user", "buy groceries", true, nil, testNow))

	got, err := h.Execute(context.Background(), router.CapUpdateNote, router.Arguments{
		UserID:   "default_user",
		EntityID: "n1",
	})

	require.NoError(t, err)
	assert.Equal(t, "✅ Updated note n1.", got)
}

func TestHandler_UpdateNote_NotFound(t *testing.T) {
	h, mock := newTestHandler(t, newFakeIndex())

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := h.Execute(context.Background(), router.CapUpdateNote, router.Arguments{
		UserID:   "default_user",
		EntityID: "missing",
	})

	require.NoError(t, err)
	assert.Equal(t, "❌ No note with id missing found for you.", got)
}

func TestHandler_DeleteNote(t *testing.T) {
	index := newFakeIndex()
	h, mock := newTestHandler(t, index)

	mock.ExpectExec("DELETE FROM notes").
		WithArgs("default_user", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapDeleteNote, router.Arguments{
		UserID:   "default_user",
		EntityID: "n1",
	})

	require.NoError(t, err)
	assert.Equal(t, "✅ Deleted note n1.", got)
	assert.Equal(t, []string{"n1"}, index.deleted)
}

func TestHandler_UnknownCapability(t *testing.T) {
	h, _ := newTestHandler(t, newFakeIndex())

	_, err := h.Execute(context.Background(), router.CapAddExpense, router.Arguments{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCapability)
}
