package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"perflab/internal/config"
	"perflab/internal/store"
	"perflab/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// metrics is the process-wide instrument set. Subcommands record into it and
// the optional metrics server scrapes it.
var metrics = telemetry.NewMetrics()

var rootCmd = &cobra.Command{
	Use:   "perflab",
	Short: "Memory and file throughput measurement toolkit",
	Long: `perflab measures how fast this machine moves bytes: filling memory
buffers, reading the monotonic clock, and repeatedly reading files while
tracking the fastest, slowest and average trial. Results can be saved to a
local history for regression comparison across runs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initRun)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Tee logs to this file as well as stderr")
	bindPersistent(rootCmd.PersistentFlags())
}

func bindPersistent(flags *pflag.FlagSet) {
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))
}

// initRun loads configuration, sets up logging and starts the metrics server
// when it is enabled. Runs before any subcommand.
func initRun() {
	config.Load(cfgFile)
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))

	if viper.GetBool("metrics.enabled") {
		port := viper.GetInt("metrics.port")
		go func() {
			if err := metrics.StartMetricsServer(port); err != nil {
				slog.Error("Metrics server stopped", "error", err)
			}
		}()
		slog.Debug("Metrics server listening", "port", port)
	}
}

// openStore builds the history store from configuration.
func openStore() (store.Store, error) {
	storeType := viper.GetString("store.type")
	conn := viper.GetString("store.path")
	if strings.HasPrefix(strings.ToLower(storeType), "postgres") {
		conn = viper.GetString("store.dsn")
	}
	return store.New(store.Config{Type: storeType, ConnectionString: conn})
}
