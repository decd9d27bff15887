package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armabazar/internal/domain/entity"
	"armabazar/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestConversationCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	mock.ExpectExec("INSERT INTO conversations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	conversation := &entity.Conversation{
		ProductID:      "p1",
		Participant1ID: "alice",
		Participant2ID: "bob",
	}

	require.NoError(t, repo.Create(context.Background(), conversation))
	assert.NotEmpty(t, conversation.ID)
	assert.False(t, conversation.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationCreateUniqueViolationBecomesConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	mock.ExpectExec("INSERT INTO conversations").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &entity.Conversation{
		ProductID:      "p1",
		Participant1ID: "alice",
		Participant2ID: "bob",
	})

	assert.True(t, errors.Is(err, "CONFLICT"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM conversations WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestConversationCloseGuardsAlreadyClosed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	// The update only matches open rows, so a concurrent closer that
	// got there first leaves zero rows affected.
	mock.ExpectExec(`UPDATE conversations\s+SET (.+) WHERE id = \$1 AND closed_by_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Close(context.Background(), "c1", "alice", "sold", time.Now())

	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestConversationCloseSucceedsOnOpenRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	mock.ExpectExec(`UPDATE conversations\s+SET (.+) WHERE id = \$1 AND closed_by_id IS NULL`).
		WithArgs("c1", "alice", "sold", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Close(context.Background(), "c1", "alice", "sold", time.Now())

	assert.NoError(t, err)
}

func TestConversationListByUserExcludesHiddenAndOwnClosed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "product_id", "participant1_id", "participant2_id",
		"closed_by_id", "close_reason", "closed_at", "created_at", "updated_at",
		"other_user_id", "other_username", "other_nickname", "other_avatar_url",
		"product_title", "product_image", "last_message", "last_message_at",
	}).AddRow(
		"c1", "p1", "alice", "bob",
		nil, nil, nil, now, now,
		"alice", "alice", "Ali", "",
		"AK-74", "/uploads/products/a.png", "hello", now,
	)

	// The filter clauses ride along in the single query; the query shape is
	// pinned down here so the exclusion predicates do not silently vanish.
	mock.ExpectQuery(`NOT EXISTS \(\s*SELECT 1 FROM conversation_hidden_for`).
		WithArgs("bob").
		WillReturnRows(rows)

	summaries, err := repo.ListByUser(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "c1", summaries[0].ID)
	assert.Equal(t, "alice", summaries[0].OtherUserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHideForIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresConversationRepository(db)

	mock.ExpectExec("ON CONFLICT DO NOTHING").
		WithArgs("c1", "bob").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.HideFor(context.Background(), "c1", "bob"))
	require.NoError(t, mock.ExpectationsWereMet())
}
