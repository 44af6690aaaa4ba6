// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/migrations"
	"github.com/codegenhq/codechat/models"
)

// identityRowID pins the table to a single record.
const identityRowID = 1

type sqliteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at
// cfg.DB.DSN, runs pending migrations, and returns a [Store] backed by it.
func NewSQLiteStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (Store, error) {
	dsn := cfg.DB.DSN
	if dsn != ":memory:" {
		if err := createLocalDBFileIfNotExists(dsn); err != nil {
			log.Err(err).Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent across the
	// pool and is plenty for a one-row store.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting database (ping): %w", err)
	}

	if err = migrations.Migrate(conn); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Debug().Str("dsn", dsn).Msg("identity store ready")
	return &sqliteStore{db: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		return f.Close()
	}
	return nil
}

// Load implements [Store].
func (s *sqliteStore) Load(ctx context.Context) (models.Identity, bool, error) {
	query, args, err := sq.
		Select("token", "email", "name", "picture").
		From("identity").
		Where(sq.Eq{"id": identityRowID}).
		ToSql()
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("build load query: %w", err)
	}

	var id models.Identity
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&id.Token, &id.User.Email, &id.User.Name, &id.User.Picture)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("scan identity row: %w", err)
	}

	if reason, usable := checkRecord(id); !usable {
		s.logger.Warn().Str("reason", reason).Msg("discarding persisted identity")
		if err := s.Clear(ctx); err != nil {
			return models.Identity{}, false, err
		}
		return models.Identity{}, false, nil
	}

	return id, true, nil
}

// checkRecord decides whether a persisted record is still usable. A record
// with missing required fields is malformed; a record whose token parses as
// a JWT with an elapsed exp claim has simply expired. Both are treated as
// absent.
func checkRecord(id models.Identity) (string, bool) {
	if id.Token == "" || id.User.Email == "" {
		return "malformed record", false
	}

	token, _, err := jwt.NewParser().ParseUnverified(id.Token, jwt.MapClaims{})
	if err != nil {
		// Opaque non-JWT tokens are accepted as-is; the server decides.
		return "", true
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", true
	}
	if exp.Before(time.Now()) {
		return "token expired", false
	}

	return "", true
}

// Save implements [Store]. The single row is replaced wholesale so a partial
// record can never be observed.
func (s *sqliteStore) Save(ctx context.Context, id models.Identity) error {
	query, args, err := sq.
		Replace("identity").
		Columns("id", "token", "email", "name", "picture", "saved_at").
		Values(identityRowID, id.Token, id.User.Email, id.User.Name, id.User.Picture, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	return nil
}

// Clear implements [Store].
func (s *sqliteStore) Clear(ctx context.Context) error {
	query, args, err := sq.
		Delete("identity").
		Where(sq.Eq{"id": identityRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}

	return nil
}

// Close implements [Store].
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
