package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/pkg/metrics"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS ratings (
	player     TEXT        NOT NULL,
	position   TEXT        NOT NULL,
	username   TEXT        NOT NULL,
	rating     SMALLINT    NOT NULL CHECK (rating BETWEEN 1 AND 10),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (player, position, username)
)`

	loadAllSQL = `SELECT player, position, username, rating FROM ratings ORDER BY player, position, username`

	upsertSQL = `INSERT INTO ratings (player, position, username, rating)
VALUES ($1, $2, $3, $4)
ON CONFLICT (player, position, username)
DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
WHERE ratings.rating IS DISTINCT FROM EXCLUDED.rating`
)

// pgConn is the subset of *pgxpool.Pool used by PostgresStore.
type pgConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresStore keeps ratings in a single Postgres table.
type PostgresStore struct {
	conn *handle[pgConn]
}

// NewPostgresStore creates a store for dsn. The pool is dialed and pinged on
// first use, not here.
func NewPostgresStore(dsn string) *PostgresStore {
	return newPostgresStore(func(ctx context.Context) (pgConn, error) {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return pool, nil
	})
}

func newPostgresStore(dial func(ctx context.Context) (pgConn, error)) *PostgresStore {
	return &PostgresStore{
		conn: newHandle(dial, func(c pgConn) error {
			c.Close()
			return nil
		}),
	}
}

// EnsureSchema creates the ratings table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const op = "postgres.ensure_schema"
	conn, err := s.conn.Get(ctx)
	if err != nil {
		return unavailable(op, err)
	}
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return unavailable(op, err)
	}
	return nil
}

// LoadAll reads every rating row.
func (s *PostgresStore) LoadAll(ctx context.Context) (model.Table, error) {
	const op = "postgres.load_all"
	start := time.Now()

	table, err := s.loadAll(ctx)
	if err != nil {
		metrics.RecordStoreError("load_all")
		return nil, unavailable(op, err)
	}
	metrics.RecordStoreLatency("load_all", float64(time.Since(start).Microseconds())/1000)
	return table, nil
}

func (s *PostgresStore) loadAll(ctx context.Context) (model.Table, error) {
	conn, err := s.conn.Get(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, loadAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var (
		out    []Row
		rowNum int
	)
	for rows.Next() {
		rowNum++
		var (
			player, position, user string
			rating                 int
		)
		if err := rows.Scan(&player, &position, &user, &rating); err != nil {
			return nil, malformed(rowNum, err)
		}
		r, err := parseRow(rowNum, []string{player, position, user, strconv.Itoa(rating)})
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return foldRows(out), nil
}

// Upsert inserts or overwrites one rating cell.
func (s *PostgresStore) Upsert(ctx context.Context, player string, pos model.Position, user string, r model.Rating) error {
	const op = "postgres.upsert"
	start := time.Now()

	conn, err := s.conn.Get(ctx)
	if err != nil {
		metrics.RecordStoreError("upsert")
		return unavailable(op, err)
	}
	if _, err := conn.Exec(ctx, upsertSQL, player, string(pos), user, int(r)); err != nil {
		metrics.RecordStoreError("upsert")
		return unavailable(op, err)
	}
	metrics.RecordStoreLatency("upsert", float64(time.Since(start).Microseconds())/1000)
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.conn.Close()
}
