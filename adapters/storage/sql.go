package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	expires_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);
`

// SQLStore keeps sessions in a SQL table; works with SQLite and PostgreSQL
type SQLStore struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLStore opens the database, creates the schema and returns a store.
// driver is "sqlite" or "postgres".
func OpenSQLStore(ctx context.Context, driver, dsn string, ttl time.Duration) (*SQLStore, error) {
	if driver == "sqlite" && !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeStorage, err, "open %s", driver)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, sessionSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.TypeStorage, "create schema", err)
	}
	return NewSQLStore(db, ttl), nil
}

// NewSQLStore wraps an open database whose schema already exists
func NewSQLStore(db *sqlx.DB, ttl time.Duration) *SQLStore {
	return &SQLStore{db: db, ttl: ttl, now: time.Now}
}

type sessionRow struct {
	Data      string `db:"data"`
	ExpiresAt int64  `db:"expires_at"`
}

func (s *SQLStore) Load(ctx context.Context, id string) (*types.AnswerSet, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT data, expires_at FROM sessions WHERE id = ?`), id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "load session", err)
	}

	if s.ttl > 0 && s.now().UnixMilli() > row.ExpiresAt {
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, notFound(id)
	}
	return decode([]byte(row.Data))
}

func (s *SQLStore) Save(ctx context.Context, id string, answers *types.AnswerSet) error {
	data, err := encode(answers)
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.ttl).UnixMilli()

	query := s.db.Rebind(`INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`)
	if _, err := s.db.ExecContext(ctx, query, id, string(data), expiresAt); err != nil {
		return errors.Wrap(errors.TypeStorage, "save session", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM sessions WHERE id = ?`), id); err != nil {
		return errors.Wrap(errors.TypeStorage, "delete session", err)
	}
	return nil
}

// PurgeExpired deletes every expired session and returns how many were removed.
// Without a TTL sessions never expire.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM sessions WHERE expires_at < ?`), s.now().UnixMilli())
	if err != nil {
		return 0, errors.Wrap(errors.TypeStorage, "purge sessions", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
