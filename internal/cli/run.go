package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontratos/contratista/internal/model"
	"github.com/opencontratos/contratista/internal/pipeline"
	"github.com/opencontratos/contratista/internal/store"
	"github.com/opencontratos/contratista/internal/worker"
	"github.com/spf13/cobra"
)

var (
	sourceDir   string
	batchSize   int
	concurrency int
	runTimeout  time.Duration
	dsn         string
	tableName   string
	noCache     bool
	noLLM       bool
	llmModel    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract contractor data from pending contracts and update the database",
	Long: `Run processes a directory of contract text files end to end:
- Walk the directory recursively for *.txt files
- Keep only contracts whose database row is still missing contractor data
- Extract razon social, representante, RUC, telefono, mail and domicilio
- Update the matching rows (existing rows only, never inserts)

Files whose process code has no row in the table are skipped, not failed:
the synchronization job that owns the table may simply not have loaded
them yet.

Example:
  contratista run --dir data/txt
  contratista run --dir data/txt --batch-size 50 --concurrency 8
  contratista run --dir data/txt --no-llm`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&sourceDir, "dir", "", "directory with contract *.txt files (default from config)")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 0, "max contracts per run (default from config)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "total timeout for the run")
	runCmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN (overrides CONTRATISTA_DSN / DATABASE_URL)")
	runCmd.Flags().StringVar(&tableName, "table", "", "target table (default from config)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the content-hash result cache")
	runCmd.Flags().BoolVar(&noLLM, "no-llm", false, "rule-based extraction only, no LLM calls")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default from config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := buildRunConfig()
	if cfg.Store.DSN == "" {
		return fmt.Errorf("no database DSN configured: set --dsn, CONTRATISTA_DSN or DATABASE_URL")
	}
	if cfg.LLM.APIKey == "" && !noLLM {
		fmt.Fprintf(os.Stderr, "Warning: OPENAI_API_KEY not set, running rule-based extraction only\n")
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Contratista Extraction Run\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Source dir:   %s\n", cfg.Source.Dir)
	fmt.Fprintf(os.Stderr, "  Table:        %s\n", cfg.Store.Table)
	fmt.Fprintf(os.Stderr, "  Batch size:   %d\n", cfg.Source.BatchSize)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	if cfg.LLM.APIKey != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	paths, err := pipeline.ListTextFiles(cfg.Source.Dir)
	if err != nil {
		return fmt.Errorf("list source files: %w", err)
	}
	fmt.Fprintf(os.Stderr, "⚙️  Found %d contract files\n", len(paths))

	st, err := store.NewPostgresStore(ctx, cfg.Store, cfg.LLM.Model)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer st.Close()

	docs, err := selectPending(ctx, st, paths, cfg.Source.BatchSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "⚙️  %d contracts pending extraction\n", len(docs))
	if len(docs) == 0 {
		fmt.Fprintf(os.Stderr, "\nNothing to do.\n\n")
		return nil
	}

	p := pipeline.New(cfg, st)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Processing with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	results := processor.ProcessDocuments(ctx, docs)

	updated, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch r.Outcome {
		case model.OutcomeUpdated:
			updated++
			fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", r.Document.Name, r.Reason)
		case model.OutcomeFailed:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Document.Name, r.Err)
		default:
			skipped++
			if verbose {
				fmt.Fprintf(os.Stderr, "- %s: %s\n", r.Document.Name, r.Reason)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Run Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d contracts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Updated:   %d\n", updated)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", skipped)
	fmt.Fprintf(os.Stderr, "  Failed:    %d\n", failed)
	fmt.Fprintf(os.Stderr, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d contracts failed", failed, len(results))
	}
	return nil
}

// buildRunConfig layers run flags over the loaded configuration.
func buildRunConfig() *model.Config {
	cfg := loadConfig()
	if sourceDir != "" {
		cfg.Source.Dir = sourceDir
	}
	if batchSize > 0 {
		cfg.Source.BatchSize = batchSize
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if dsn != "" {
		cfg.Store.DSN = dsn
	}
	if tableName != "" {
		cfg.Store.Table = tableName
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noLLM {
		cfg.LLM.APIKey = ""
	}
	return cfg
}

// selectPending keeps the files whose database row still lacks contractor
// data, in one round trip, and loads at most batchSize of them. Duplicate
// process codes keep only the first file in sorted order.
func selectPending(ctx context.Context, st store.ContractStore, paths []string, batchSize int) ([]model.Document, error) {
	byCode := make(map[string]string, len(paths))
	codes := make([]string, 0, len(paths))
	for _, path := range paths {
		code := pipeline.CodeFromFilename(filepath.Base(path))
		if code == "" {
			continue
		}
		if _, seen := byCode[code]; seen {
			continue
		}
		byCode[code] = path
		codes = append(codes, code)
	}

	pending, err := st.FilterPending(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("filter pending: %w", err)
	}

	var docs []model.Document
	for _, code := range pending {
		if batchSize > 0 && len(docs) >= batchSize {
			break
		}
		doc, err := pipeline.ReadDocument(byCode[code])
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", byCode[code], err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
