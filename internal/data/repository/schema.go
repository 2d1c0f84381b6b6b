package repository

import (
	"context"
	"fmt"

	"luminacine/pkg/database"
)

// InitialiseSchema creates the tables this service owns. Everything else
// lives in the remote backend.
func InitialiseSchema(ctx context.Context, db database.PgxIface) error {
	if err := createSessionsTable(ctx, db); err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}
	return nil
}

func createSessionsTable(ctx context.Context, db database.PgxIface) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			token UUID NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			sealed_token BYTEA NOT NULL,
			user_agent TEXT,
			ip_address TEXT,
			expires_at TIMESTAMPTZ NOT NULL,
			revoked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS sessions_user_id_idx ON sessions (user_id);
	`)
	return err
}
