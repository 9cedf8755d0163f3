package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/migrations"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// maxTxAttempts bounds how often a transaction is replayed after a
// retryable failure.
const maxTxAttempts = 3

// DB wraps the shared connection pool. The pool size is the only admission
// control of the server: callers queue once every connection is busy.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens and pings a PostgreSQL pool described by cfg.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Int("max_open_conns", cfg.MaxOpenConns).Msg("connected to database successfully")

	return NewDB(conn, log), nil
}

// NewDB wraps an already opened pool.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// inTx runs fn inside a transaction and commits it. Attempts that fail with
// a retryable error (deadlock, serialization failure, lost connection) are
// replayed from the start. A failed commit is replayed only when the server
// reports the transaction as rolled back; after a lost connection the commit
// may already have been applied.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		var atCommit bool
		atCommit, err = db.runTx(ctx, fn)
		if err == nil || !db.replayable(err, atCommit) {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Str("func", "*DB.inTx").Msg("retrying transaction")
	}

	return err
}

func (db *DB) replayable(err error, atCommit bool) bool {
	if db.errorClassificator.Classify(err) != Retryable {
		return false
	}
	if atCommit {
		return pgerrcode.IsTransactionRollback(postgresError(err))
	}

	return true
}

// runTx reports whether err came from Commit.
func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return true, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return false, nil
}
