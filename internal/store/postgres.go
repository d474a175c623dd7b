package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencontratos/contratista/internal/model"
)

// PostgresStore implements ContractStore over a pgx connection pool.
type PostgresStore struct {
	pool    *pgxpool.Pool
	table   string
	schema  string
	relname string
	llmTag  string // model name recorded in the metadata column
	timeout time.Duration

	// introspected once per process; the table schema does not change
	// mid-run and re-querying information_schema per update is wasteful
	columns map[string]bool
}

// NewPostgresStore connects and introspects the target table's columns.
func NewPostgresStore(ctx context.Context, cfg model.StoreConfig, llmModel string) (*PostgresStore, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "contratista"

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	schema, relname := splitTable(cfg.Table)
	s := &PostgresStore{
		pool:    pool,
		table:   cfg.Table,
		schema:  schema,
		relname: relname,
		llmTag:  llmModel,
		timeout: cfg.Timeout,
	}
	if err := s.introspect(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func splitTable(table string) (schema, relname string) {
	if i := strings.IndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "public", table
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// introspect loads the target table's column set so updates can adapt to
// whatever schema the loader owns: optional columns are simply skipped.
func (s *PostgresStore) introspect(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = $1 AND table_name = $2`,
		s.schema, s.relname)
	if err != nil {
		return fmt.Errorf("introspect %s: %w", s.table, err)
	}
	defer rows.Close()

	s.columns = make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("introspect %s: %w", s.table, err)
		}
		s.columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("introspect %s: %w", s.table, err)
	}
	if len(s.columns) == 0 {
		return fmt.Errorf("table %s not found or has no columns", s.table)
	}
	return nil
}

// FilterPending keeps, in one batch query, the codes that exist and still
// lack both critical fields (razon_social and ruc). Records carrying either
// one were already processed.
func (s *PostgresStore) FilterPending(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(
		`SELECT codigo_proceso, razon_social, ruc FROM %s WHERE codigo_proceso = ANY($1)`,
		s.table)
	rows, err := s.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("filter pending: %w", err)
	}
	defer rows.Close()

	pending := make(map[string]bool)
	for rows.Next() {
		var code string
		var razon, ruc *string
		if err := rows.Scan(&code, &razon, &ruc); err != nil {
			return nil, fmt.Errorf("filter pending: %w", err)
		}
		if isEmpty(razon) && isEmpty(ruc) {
			pending[code] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("filter pending: %w", err)
	}

	// preserve caller order
	out := make([]string, 0, len(pending))
	for _, c := range codes {
		if pending[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func isEmpty(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// UpdateContractor writes the non-empty result fields onto the existing row.
// Behavior mirrors the update contract exactly: no row means skipped, a
// rowcount of zero after a successful statement still counts as success when
// the row exists (the values simply did not change).
func (s *PostgresStore) UpdateContractor(ctx context.Context, code, sourceFile string, result model.Result) (UpdateOutcome, error) {
	if code == "" {
		return UpdateOutcome{}, fmt.Errorf("process code is required")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.exists(ctx, code)
	if err != nil {
		return UpdateOutcome{}, err
	}
	if !exists {
		return UpdateOutcome{Status: StatusSkipped, Reason: "record not found"}, nil
	}

	stmt := buildUpdate(s.table, s.columns, code, sourceFile, result, s.llmTag, time.Now().UTC())

	tag, err := s.pool.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return UpdateOutcome{}, fmt.Errorf("update %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		// Row vanished between the existence check and the update, or the
		// values were already identical. Re-check to tell the two apart.
		exists, err := s.exists(ctx, code)
		if err != nil {
			return UpdateOutcome{}, err
		}
		if !exists {
			return UpdateOutcome{Status: StatusSkipped, Reason: "record not found"}, nil
		}
	}
	return UpdateOutcome{Status: StatusUpdated, Columns: stmt.Columns}, nil
}

func (s *PostgresStore) exists(ctx context.Context, code string) (bool, error) {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE codigo_proceso = $1 LIMIT 1`, s.table)
	var one int
	err := s.pool.QueryRow(ctx, query, code).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s: %w", code, err)
	}
	return true, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// updateStatement is a fully built partial UPDATE.
type updateStatement struct {
	SQL     string
	Args    []any
	Columns []string
}

// buildUpdate assembles the SET list: a timestamp touch first (so the
// statement is never empty), then each non-empty contractor field that has a
// matching column, the source filename, and a jsonb metadata merge recording
// what the extraction produced.
func buildUpdate(table string, columns map[string]bool, code, sourceFile string, result model.Result, llmTag string, now time.Time) updateStatement {
	var (
		sets    []string
		args    []any
		written []string
	)

	switch {
	case columns["updated_at"]:
		sets = append(sets, "updated_at = NOW()")
	case columns["fecha_actualizacion"]:
		sets = append(sets, "fecha_actualizacion = NOW()")
	}

	add := func(column, value string) {
		if !columns[column] || strings.TrimSpace(value) == "" {
			return
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		written = append(written, column)
	}

	for _, f := range model.Fields {
		add(f, result.Get(f))
	}
	add("fuente_archivo", sourceFile)

	if columns["metadata"] {
		detected := make([]string, 0, len(model.Fields))
		for _, f := range model.Fields {
			if result.Get(f) != "" {
				detected = append(detected, f)
			}
		}
		sort.Strings(detected)
		meta, _ := json.Marshal(map[string]any{
			"llm_contratista": map[string]any{
				"model":             llmTag,
				"timestamp":         now.Format(time.RFC3339),
				"campos_detectados": detected,
				"datos_llm":         result,
			},
		})
		args = append(args, string(meta))
		sets = append(sets, fmt.Sprintf("metadata = COALESCE(metadata, '{}'::jsonb) || $%d::jsonb", len(args)))
	}

	args = append(args, code)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE codigo_proceso = $%d",
		table, strings.Join(sets, ", "), len(args))

	return updateStatement{SQL: sql, Args: args, Columns: written}
}
