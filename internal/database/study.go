package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StudySession is a stored question session.
type StudySession struct {
	ID          string
	StudentID   string
	ContextType string
	QuestionIDs []string
	StartedAt   time.Time
	Finished    bool
}

// Answer is one recorded answer of a session.
type Answer struct {
	QuestionID string
	Area       string
	Answer     string
	Correct    bool
}

// Draft is a document-practice attempt.
type Draft struct {
	ID        string
	StudentID string
	Type      string
	Grade     *float64
}

func (db *DB) CreateStudySession(ctx context.Context, studentID, contextType string, questionIDs []string) (*StudySession, error) {
	s := &StudySession{
		ID:          uuid.New().String(),
		StudentID:   studentID,
		ContextType: contextType,
		QuestionIDs: questionIDs,
		StartedAt:   db.now(),
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO study_sessions (id, student_id, context_type, question_ids, started_at) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.StudentID, s.ContextType, strings.Join(questionIDs, ","), s.StartedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert study session: %w", err)
	}
	return s, nil
}

func (db *DB) GetStudySession(ctx context.Context, id string) (*StudySession, error) {
	var (
		s          StudySession
		ids        string
		startedAt  int64
		finishedAt sql.NullInt64
	)
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, student_id, context_type, question_ids, started_at, finished_at FROM study_sessions WHERE id = ?", id,
	).Scan(&s.ID, &s.StudentID, &s.ContextType, &ids, &startedAt, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get study session: %w", err)
	}
	if ids != "" {
		s.QuestionIDs = strings.Split(ids, ",")
	}
	s.StartedAt = time.Unix(startedAt, 0)
	s.Finished = finishedAt.Valid
	return &s, nil
}

// SaveAnswer records an answer; answering the same question twice keeps the latest.
func (db *DB) SaveAnswer(ctx context.Context, sessionID string, a Answer) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO answers (session_id, question_id, area, answer, correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, question_id) DO UPDATE SET
			answer = excluded.answer, correct = excluded.correct, answered_at = excluded.answered_at
	`, sessionID, a.QuestionID, a.Area, a.Answer, boolToInt(a.Correct), db.now().Unix())
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	return nil
}

func (db *DB) SessionAnswers(ctx context.Context, sessionID string) ([]Answer, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT question_id, area, answer, correct FROM answers WHERE session_id = ? ORDER BY answered_at", sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var (
			a       Answer
			correct int
		)
		if err := rows.Scan(&a.QuestionID, &a.Area, &a.Answer, &correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Correct = correct == 1
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (db *DB) FinishStudySession(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE study_sessions SET finished_at = ? WHERE id = ? AND finished_at IS NULL", db.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("finish study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SessionsStartedSince counts sessions the student opened after since.
func (db *DB) SessionsStartedSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM study_sessions WHERE student_id = ? AND started_at >= ?", studentID, since.Unix(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (db *DB) CreateDraft(ctx context.Context, studentID, docType string) (*Draft, error) {
	d := &Draft{ID: uuid.New().String(), StudentID: studentID, Type: docType}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO drafts (id, student_id, type, created_at) VALUES (?, ?, ?, ?)",
		d.ID, d.StudentID, d.Type, db.now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert draft: %w", err)
	}
	return d, nil
}

func (db *DB) GetDraft(ctx context.Context, id string) (*Draft, error) {
	var (
		d     Draft
		grade sql.NullFloat64
	)
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, student_id, type, grade FROM drafts WHERE id = ?", id,
	).Scan(&d.ID, &d.StudentID, &d.Type, &grade)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if grade.Valid {
		d.Grade = &grade.Float64
	}
	return &d, nil
}

func (db *DB) SaveDraftGrade(ctx context.Context, id string, grade float64) error {
	_, err := db.conn.ExecContext(ctx,
		"UPDATE drafts SET grade = ?, evaluated_at = ? WHERE id = ?", grade, db.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("save draft grade: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
