// Package database is the SQLite storage of the development backend.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"oabstudy/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// DB wraps the connection; all methods are safe for concurrent use.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens the database at path (":memory:" for tests) and creates the schema.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, now: time.Now}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			plan TEXT NOT NULL DEFAULT 'gratuito',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS study_sessions (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			context_type TEXT NOT NULL,
			question_ids TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER,
			FOREIGN KEY (student_id) REFERENCES students(id)
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			session_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			area TEXT NOT NULL,
			answer TEXT NOT NULL,
			correct INTEGER NOT NULL,
			answered_at INTEGER NOT NULL,
			PRIMARY KEY (session_id, question_id),
			FOREIGN KEY (session_id) REFERENCES study_sessions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS drafts (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			type TEXT NOT NULL,
			grade REAL,
			created_at INTEGER NOT NULL,
			evaluated_at INTEGER,
			FOREIGN KEY (student_id) REFERENCES students(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// CreateStudent registers a student with a bcrypt-hashed password.
func (db *DB) CreateStudent(ctx context.Context, name, email, password string) (*models.Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM students WHERE email = ?", email).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("check existing student: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	student := &models.Student{
		ID:    uuid.New().String(),
		Name:  strings.TrimSpace(name),
		Email: email,
		Plan:  "gratuito",
	}
	_, err = db.conn.ExecContext(ctx,
		"INSERT INTO students (id, name, email, password, plan, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		student.ID, student.Name, student.Email, string(hashed), student.Plan, db.now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}
	return student, nil
}

// Authenticate returns the student when email and password match, ErrNotFound otherwise.
func (db *DB) Authenticate(ctx context.Context, email, password string) (*models.Student, error) {
	student, err := db.getStudent(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if !CheckPasswordHash(password, student.Password) {
		return nil, ErrNotFound
	}
	return student, nil
}

func (db *DB) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return db.getStudent(ctx, "id", id)
}

func (db *DB) getStudent(ctx context.Context, column, value string) (*models.Student, error) {
	var s models.Student
	query := "SELECT id, name, email, plan, password FROM students WHERE " + column + " = ?"
	err := db.conn.QueryRowContext(ctx, query, value).Scan(&s.ID, &s.Name, &s.Email, &s.Plan, &s.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}

// CheckPasswordHash compares a password with its bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
