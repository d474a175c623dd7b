package store

import (
	"strings"
	"testing"
	"time"

	"github.com/opencontratos/contratista/internal/model"
)

func fullColumns() map[string]bool {
	cols := map[string]bool{
		"codigo_proceso": true,
		"updated_at":     true,
		"fuente_archivo": true,
		"metadata":       true,
	}
	for _, f := range model.Fields {
		cols[f] = true
	}
	return cols
}

func TestBuildUpdate_OnlyNonEmptyFields(t *testing.T) {
	result := model.Result{
		RazonSocial: "CONSTRUCTORA ANDES CIA. LTDA.",
		RUC:         "1790012345001",
	}
	stmt := buildUpdate("public.sync_contratos", fullColumns(), "PROC-001", "contrato.txt", result, "gpt-4o-mini", time.Now())

	if !strings.HasPrefix(stmt.SQL, "UPDATE public.sync_contratos SET updated_at = NOW()") {
		t.Errorf("timestamp touch must come first: %s", stmt.SQL)
	}
	if strings.Contains(stmt.SQL, "telefono") || strings.Contains(stmt.SQL, "mail =") {
		t.Errorf("empty fields must not appear in SET: %s", stmt.SQL)
	}
	if len(stmt.Columns) != 3 { // razon_social, ruc, fuente_archivo
		t.Errorf("written columns = %v", stmt.Columns)
	}
	// last arg is the key
	if stmt.Args[len(stmt.Args)-1] != "PROC-001" {
		t.Errorf("last arg = %v, want the process code", stmt.Args[len(stmt.Args)-1])
	}
	if !strings.Contains(stmt.SQL, "WHERE codigo_proceso =") {
		t.Errorf("missing key predicate: %s", stmt.SQL)
	}
}

func TestBuildUpdate_SkipsMissingColumns(t *testing.T) {
	cols := map[string]bool{
		"codigo_proceso":      true,
		"fecha_actualizacion": true,
		"razon_social":        true,
	}
	result := model.Result{
		RazonSocial: "ANDES S.A.",
		Telefono:    "0991234567", // column absent from schema
	}
	stmt := buildUpdate("public.sync_contratos", cols, "PROC-002", "c.txt", result, "m", time.Now())

	if !strings.Contains(stmt.SQL, "fecha_actualizacion = NOW()") {
		t.Errorf("expected fallback timestamp column: %s", stmt.SQL)
	}
	if strings.Contains(stmt.SQL, "telefono") {
		t.Errorf("absent column must be skipped: %s", stmt.SQL)
	}
	if strings.Contains(stmt.SQL, "metadata") {
		t.Errorf("metadata merge requires a metadata column: %s", stmt.SQL)
	}
	if len(stmt.Columns) != 1 || stmt.Columns[0] != "razon_social" {
		t.Errorf("written columns = %v", stmt.Columns)
	}
}

func TestBuildUpdate_EmptyResultStillTouchesTimestamp(t *testing.T) {
	stmt := buildUpdate("public.sync_contratos", fullColumns(), "PROC-003", "c.txt", model.Result{}, "m", time.Now())
	if !strings.Contains(stmt.SQL, "updated_at = NOW()") {
		t.Errorf("SET list must never be empty: %s", stmt.SQL)
	}
}

func TestBuildUpdate_MetadataMerge(t *testing.T) {
	result := model.Result{RUC: "1790012345001"}
	stmt := buildUpdate("public.sync_contratos", fullColumns(), "PROC-004", "c.txt", result, "gpt-4o-mini", time.Now())

	if !strings.Contains(stmt.SQL, "metadata = COALESCE(metadata, '{}'::jsonb) ||") {
		t.Errorf("expected jsonb merge, got: %s", stmt.SQL)
	}
	// the metadata payload is the second-to-last arg
	meta, ok := stmt.Args[len(stmt.Args)-2].(string)
	if !ok {
		t.Fatalf("metadata arg is %T", stmt.Args[len(stmt.Args)-2])
	}
	for _, want := range []string{`"model":"gpt-4o-mini"`, `"campos_detectados":["ruc"]`, `"ruc":"1790012345001"`} {
		if !strings.Contains(meta, want) {
			t.Errorf("metadata %s missing %s", meta, want)
		}
	}
}

func TestSplitTable(t *testing.T) {
	if sc, tb := splitTable("public.sync_contratos"); sc != "public" || tb != "sync_contratos" {
		t.Errorf("splitTable = %q, %q", sc, tb)
	}
	if sc, tb := splitTable("sync_contratos"); sc != "public" || tb != "sync_contratos" {
		t.Errorf("splitTable default schema = %q, %q", sc, tb)
	}
}
