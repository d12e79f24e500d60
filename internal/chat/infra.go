package chat

import (
	"context"
	"database/sql"
)

const schema = `
	CREATE TABLE IF NOT EXISTS chat_exchanges (
		id         UUID PRIMARY KEY,
		message    TEXT NOT NULL,
		reply      TEXT NOT NULL,
		cr_id      TEXT,
		path       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// EnsureSchema creates the exchange table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (r *repo) SaveExchange(ctx context.Context, e *Exchange) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_exchanges (id, message, reply, cr_id, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		e.ID,
		e.Message,
		e.Reply,
		nullable(e.CRID),
		e.Path,
		e.CreatedAt,
	)
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
