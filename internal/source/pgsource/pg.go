// Package pgsource serves polygon geometries from a keyed Postgres table.
package pgsource

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hexpanel/hexpanel/internal/core/model"
	"github.com/hexpanel/hexpanel/internal/core/observability"
	"github.com/hexpanel/hexpanel/internal/source"
)

// table names come from config, not user input, but keep them boring anyway
var safeIdent = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

type Source struct {
	pool  *pgxpool.Pool
	query string
}

func New(ctx context.Context, dsn, table string) (*Source, error) {
	if !safeIdent.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Source{
		pool:  pool,
		query: fmt.Sprintf(`select geog from %s where scale_of_polygon = $1 limit 1`, table),
	}, nil
}

func (s *Source) GeometryForScale(ctx context.Context, scale model.Scale) (string, error) {
	start := time.Now()
	var geog string
	err := s.pool.QueryRow(ctx, s.query, string(scale)).Scan(&geog)
	observability.ObserveSourceLatency("postgres", time.Since(start).Seconds())
	if errors.Is(err, pgx.ErrNoRows) {
		return "", &source.NoGeometryForScaleError{Scale: string(scale)}
	}
	if err != nil {
		return "", fmt.Errorf("query geometry for scale %q: %w", scale, err)
	}
	return geog, nil
}

func (s *Source) Close() {
	s.pool.Close()
}
