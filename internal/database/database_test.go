package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStudents(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	s, err := db.CreateStudent(ctx, " Ana ", "Ana@X.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, "ana@x.com", s.Email)
	assert.NotEmpty(t, s.ID)

	_, err = db.CreateStudent(ctx, "Other", "ana@x.com", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := db.Authenticate(ctx, "ANA@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = db.Authenticate(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.Authenticate(ctx, "nobody@x.com", "secret")
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := db.GetStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "gratuito", byID.Plan)
}

func TestStudySessionLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	student, err := db.CreateStudent(ctx, "Ana", "ana@x.com", "pw")
	require.NoError(t, err)

	sess, err := db.CreateStudySession(ctx, student.ID, "oab", []string{"q1", "q2"})
	require.NoError(t, err)

	got, err := db.GetStudySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, got.QuestionIDs)
	assert.False(t, got.Finished)

	require.NoError(t, db.SaveAnswer(ctx, sess.ID, Answer{QuestionID: "q1", Area: "civil", Answer: "A", Correct: false}))
	require.NoError(t, db.SaveAnswer(ctx, sess.ID, Answer{QuestionID: "q1", Area: "civil", Answer: "B", Correct: true}))
	require.NoError(t, db.SaveAnswer(ctx, sess.ID, Answer{QuestionID: "q2", Area: "penal", Answer: "C", Correct: false}))

	answers, err := db.SessionAnswers(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)

	require.NoError(t, db.FinishStudySession(ctx, sess.ID))
	assert.ErrorIs(t, db.FinishStudySession(ctx, sess.ID), ErrNotFound)

	draft, err := db.CreateDraft(ctx, student.ID, "parecer")
	require.NoError(t, err)
	require.NoError(t, db.SaveDraftGrade(ctx, draft.ID, 7.5))

	d, err := db.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, d.Grade)
	assert.Equal(t, 7.5, *d.Grade)

	stats, err := db.StudentStats(ctx, student.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SessionsCompleted)
	assert.Equal(t, 2, stats.QuestionsAnswered)
	assert.Equal(t, 1, stats.CorrectAnswers)
	assert.Equal(t, 1, stats.DocumentsCompleted)
	assert.Equal(t, []AreaStats{{Area: "civil", Answered: 1, Correct: 1}, {Area: "penal", Answered: 1, Correct: 0}}, stats.ByArea)

	future, err := db.StudentStats(ctx, student.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, future.QuestionsAnswered)

	n, err := db.SessionsStartedSince(ctx, student.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = db.GetStudySession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 66.7, Percent(2, 3))
}
