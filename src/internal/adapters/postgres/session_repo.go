package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/cinefront/cinefront/src/internal/domain"
)

func NewConnection(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

type PostgresSessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

func (r *PostgresSessionRepo) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS frontend_sessions (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			expiration BIGINT,
			email TEXT,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS frontend_sessions_expiration_idx ON frontend_sessions (expiration);
	`)
	return err
}

func (r *PostgresSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT token, expiration, email
		FROM frontend_sessions
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var (
		s   domain.Session
		exp sql.NullInt64
	)
	err := row.Scan(&s.Token, &exp, &s.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = exp.Int64
	s.HasExpiry = exp.Valid
	return &s, nil
}

func (r *PostgresSessionRepo) Save(ctx context.Context, id string, s domain.Session) error {
	query := `
		INSERT INTO frontend_sessions (id, token, expiration, email, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			expiration = EXCLUDED.expiration,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at;
	`
	now := time.Now()
	exp := sql.NullInt64{Int64: s.ExpiresAt, Valid: s.HasExpiry}
	if _, err := r.db.ExecContext(ctx, query, id, s.Token, exp, s.Email, now); err != nil {
		return err
	}
	if _, err := r.DeleteExpired(ctx, now); err != nil {
		return fmt.Errorf("sweep expired sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions the guard would reject as expired, rows
// without an expiration included. It returns the number of rows removed.
func (r *PostgresSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frontend_sessions WHERE expiration IS NULL OR expiration <= $1`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM frontend_sessions WHERE id = $1`, id)
	return err
}
