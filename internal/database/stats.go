package database

import (
	"context"
	"fmt"
	"time"
)

// AreaStats aggregates answers of one subject area.
type AreaStats struct {
	Area     string
	Answered int
	Correct  int
}

// Stats aggregates a student's activity since a point in time. A zero since
// means all time.
type Stats struct {
	SessionsCompleted  int
	QuestionsAnswered  int
	CorrectAnswers     int
	DocumentsCompleted int
	ByArea             []AreaStats
}

func (db *DB) StudentStats(ctx context.Context, studentID string, since time.Time) (*Stats, error) {
	from := since.Unix()
	if since.IsZero() {
		from = 0
	}

	var st Stats
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM study_sessions WHERE student_id = ? AND finished_at IS NOT NULL AND started_at >= ?",
		studentID, from,
	).Scan(&st.SessionsCompleted)
	if err != nil {
		return nil, fmt.Errorf("count finished sessions: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM drafts WHERE student_id = ? AND grade IS NOT NULL AND created_at >= ?",
		studentID, from,
	).Scan(&st.DocumentsCompleted)
	if err != nil {
		return nil, fmt.Errorf("count evaluated drafts: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT a.area, COUNT(*), SUM(a.correct)
		FROM answers a
		JOIN study_sessions s ON s.id = a.session_id
		WHERE s.student_id = ? AND a.answered_at >= ?
		GROUP BY a.area
		ORDER BY a.area
	`, studentID, from)
	if err != nil {
		return nil, fmt.Errorf("aggregate answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a AreaStats
		if err := rows.Scan(&a.Area, &a.Answered, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan area stats: %w", err)
		}
		st.QuestionsAnswered += a.Answered
		st.CorrectAnswers += a.Correct
		st.ByArea = append(st.ByArea, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &st, nil
}

// Percent returns correct/answered as a percentage rounded to one decimal.
func Percent(correct, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return float64(int(float64(correct)/float64(answered)*1000+0.5)) / 10
}
