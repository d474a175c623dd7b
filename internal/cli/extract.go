package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/opencontratos/contratista/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractTimeout time.Duration
	extractNoLLM   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract contractor data from a single contract file",
	Long: `Extract runs the full extraction pipeline on one contract text file
and prints the result as JSON without touching the database. Useful for
inspecting what a run would write for a given contract.

Example:
  contratista extract data/txt/2024/PROC-2024-001.txt
  contratista extract contrato.txt --no-llm`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 5*time.Minute, "extraction timeout")
	extractCmd.Flags().BoolVar(&extractNoLLM, "no-llm", false, "rule-based extraction only, no LLM calls")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = false
	if extractNoLLM {
		cfg.LLM.APIKey = ""
	}

	doc, err := pipeline.ReadDocument(path)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "File:         %s\n", doc.Name)
		fmt.Fprintf(os.Stderr, "Process code: %s\n", doc.ProcessCode)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, nil)
	result, err := p.ExtractDocument(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract %s: %w", doc.Name, err)
	}

	out := struct {
		ProcessCode string `json:"codigo_proceso"`
		File        string `json:"fuente_archivo"`
		Fields      any    `json:"campos"`
	}{
		ProcessCode: doc.ProcessCode,
		File:        doc.Name,
		Fields:      result,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
