package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teemow/gtcli/internal/format"
	"github.com/teemow/gtcli/internal/logging"
	"github.com/teemow/gtcli/internal/store"
)

var (
	configDir  string
	outputName string
	debugMode  bool
)

// rootCmd represents the base command for the gtcli application
var rootCmd = &cobra.Command{
	Use:   "gtcli",
	Short: "Manage Google Tasks from the command line",
	Long: `gtcli is a command-line client for Google Tasks. It authorizes one or
more Google accounts via OAuth2 and manages task lists and tasks.

It can also run as an MCP (Model Context Protocol) server for AI
assistants via the serve command.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gtcli version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: ~/.gtcli)")
	rootCmd.PersistentFlags().StringVarP(&outputName, "output", "o", "table", "Output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newCredentialsCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newLogger creates the logger for the current invocation. Logs go to
// stderr so table/JSON output on stdout stays machine-readable.
func newLogger() *slog.Logger {
	return logging.New(os.Stderr, debugMode)
}

// defaultConfigDir resolves the configuration directory: the --config-dir
// flag when set, otherwise ~/.gtcli. This is the only place the home
// directory default is applied.
func defaultConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gtcli"), nil
}

// openStore opens the account store over the resolved config directory.
func openStore(logger *slog.Logger) (*store.Store, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return nil, err
	}
	return store.New(dir, logger)
}

// newFormatWriter builds the stdout writer for the selected output format.
func newFormatWriter() (*format.Writer, error) {
	f, err := format.Parse(outputName)
	if err != nil {
		return nil, err
	}
	return format.NewWriter(os.Stdout, f), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gtcli version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gtcli version %s\n", version)
		},
	}
}
