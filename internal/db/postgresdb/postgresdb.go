// Package postgresdb provides a PostgreSQL-backed key/value storage for the
// client. The schema is managed by goose migrations.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresDB stores every key as one row of the key_value_store table.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type initOptions struct {
	DBPreReset bool
}

// InitOption defines a functional option for configuring database initialization.
type InitOption func(*initOptions)

// WithDBPreReset drops every public table before the migrations run.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New connects to databaseDSN, applies the migrations from migrationsDir
// and returns the ready storage.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	return setup(ctx, database, connectionTimeout, migrationsDir, options)
}

// setup prepares the schema on database. database is closed when it fails.
func setup(
	ctx context.Context,
	database *sql.DB,
	connectionTimeout time.Duration,
	migrationsDir string,
	options *initOptions,
) (*PostgresDB, error) {
	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			_ = database.Close()
			return nil,
				fmt.Errorf(
					"in internal/db/postgresdb/postgresdb.go/setup(): error while `result.resetDB()` calling: %w",
					err,
				)
		}
	}

	if err := goose.SetDialect("postgres"); err != nil {
		_ = database.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/setup(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.UpContext(ctx, result.database, migrationsDir); err != nil {
		_ = database.Close()
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/setup(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	return result, nil
}

func (db *PostgresDB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.database.QueryRowContext(
		ctx,
		`SELECT value FROM key_value_store WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/Get(): error while `Scan()` calling: %w",
				err,
			)
	}

	return value, true, nil
}

func (db *PostgresDB) Set(ctx context.Context, key, value string) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			INSERT INTO key_value_store (key, value, updated_at)
				VALUES ($1, $2, now())
				ON CONFLICT (key) DO UPDATE
					SET value = EXCLUDED.value,
						updated_at = EXCLUDED.updated_at
		`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/Set(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}

	return nil
}

func (db *PostgresDB) Clear(ctx context.Context) error {
	_, err := db.database.ExecContext(ctx, `DELETE FROM key_value_store`)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/Clear(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}

	return nil
}

func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

func (db *PostgresDB) Close() error {
	return db.database.Close()
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			DO $$
			DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`,
	)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/resetDB(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}
	return nil
}
