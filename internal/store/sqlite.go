package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Andebugulin/bloglist/internal/model"
)

// recordKey mirrors the storage key used by the original browser client.
const recordKey = "loggedBlogUser"

// SQLite stores the session record in a single-row table.
type SQLite struct {
	conn *sql.DB
	path string
}

func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

func (s *SQLite) Init() error {
	var err error
	s.conn, err = sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}

	res, err := s.conn.Exec(`
CREATE TABLE IF NOT EXISTS session (
    key TEXT PRIMARY KEY,
    value TEXT,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`)

	storeLogger.Info().Any("db_result", res).Str("path", s.path).Msg("Session store initialized")
	return err
}

func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *SQLite) Load() (*model.Session, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM session WHERE key = ?`, recordKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if !session.Valid() {
		return nil, ErrCorruptRecord
	}
	return &session, nil
}

func (s *SQLite) Save(session *model.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(`
INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		recordKey, string(value))
	return err
}

func (s *SQLite) Clear() error {
	_, err := s.conn.Exec(`DELETE FROM session WHERE key = ?`, recordKey)
	return err
}
