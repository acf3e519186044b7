// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Postgres-backed persistence for audit runs.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"seolens-mcp/internal/config"
	serr "seolens-mcp/internal/errors"
)

// AuditRecord is one persisted audit run.
type AuditRecord struct {
	ID        string          `json:"id"`
	Site      string          `json:"site"`
	AuditType string          `json:"audit_type"`
	Overall   int             `json:"overall"`
	Grade     string          `json:"grade"`
	Report    json.RawMessage `json:"report"`
	CreatedAt time.Time       `json:"created_at"`
}

// querier is the subset of pgxpool.Pool the store issues queries through;
// tests substitute a recording implementation.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	q    querier
}

// Open connects a pool using the configured DSN and timeouts.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	pcfg.ConnConfig.ConnectTimeout = time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	if pcfg.ConnConfig.RuntimeParams == nil {
		pcfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	pcfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeoutMs)

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool new: %w", err)
	}
	return &Store{pool: pool, q: pool}, nil
}

// Init creates the audits table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audits (
			id         text PRIMARY KEY,
			site       text NOT NULL,
			audit_type text NOT NULL,
			overall    integer NOT NULL,
			grade      text NOT NULL,
			report     jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("init audits table: %w", err)
	}
	return nil
}

// Save inserts a record, assigning an ID when empty, and returns the ID.
func (s *Store) Save(ctx context.Context, rec AuditRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = newID()
	}
	_, err := s.q.Exec(ctx,
		`INSERT INTO audits (id, site, audit_type, overall, grade, report) VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Site, rec.AuditType, rec.Overall, rec.Grade, rec.Report)
	if err != nil {
		return "", fmt.Errorf("save audit: %w", err)
	}
	return rec.ID, nil
}

// Get fetches one record by ID.
func (s *Store) Get(ctx context.Context, id string) (*AuditRecord, error) {
	var rec AuditRecord
	err := s.q.QueryRow(ctx,
		`SELECT id, site, audit_type, overall, grade, report, created_at FROM audits WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Site, &rec.AuditType, &rec.Overall, &rec.Grade, &rec.Report, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, serr.NewNotFound("audit", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get audit: %w", err)
	}
	return &rec, nil
}

// List returns records newest first, with the total count for pagination.
func (s *Store) List(ctx context.Context, site string, limit, offset int) ([]AuditRecord, int, error) {
	var total int
	if err := s.q.QueryRow(ctx,
		`SELECT count(*) FROM audits WHERE ($1 = '' OR site = $1)`, site).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audits: %w", err)
	}

	rows, err := s.q.Query(ctx,
		`SELECT id, site, audit_type, overall, grade, report, created_at
		 FROM audits WHERE ($1 = '' OR site = $1)
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, site, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Site, &rec.AuditType, &rec.Overall, &rec.Grade, &rec.Report, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list audits: %w", err)
	}
	return out, total, nil
}

// Delete removes one record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM audits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return serr.NewNotFound("audit", id)
	}
	return nil
}

func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
