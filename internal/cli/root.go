package cli

import (
	"fmt"
	"os"

	"github.com/opencontratos/contratista/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "contratista",
	Short: "Contratista - contractor data extraction for public contract documents",
	Long: `Contratista extracts contractor identification data from OCR'd
Ecuadorian public-contract text files and writes it back to the contract
database.

It combines a rule-based cascade over the clauses that identify the
contractor with an LLM fallback for documents the rules cannot resolve,
validates every candidate value, and updates only rows that already exist.

Contratista never inserts rows: the contract table is owned by the
synchronization job that feeds it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Contratista.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("contratista v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.contratista/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.contratista")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CONTRATISTA_*
	viper.SetEnvPrefix("CONTRATISTA")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the runtime configuration: defaults, then the config
// file, then environment variables. Flags are layered on by each command.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config file ignored: %v\n", err)
		cfg = model.DefaultConfig()
	}
	cfg.Output.Verbose = verbose

	if cfg.Store.DSN == "" {
		if dsn := os.Getenv("CONTRATISTA_DSN"); dsn != "" {
			cfg.Store.DSN = dsn
		} else if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			cfg.Store.DSN = dsn
		}
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}
