package cmd

import (
	"fmt"

	"github.com/rustyeddy/fundnav/config"
	"github.com/rustyeddy/fundnav/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fundnav",
	Short: "Weekly NAV accounting for a unitised fund",
	Long: `fundnav reconstructs the state of a pooled fund from its weekly entries.

Each entry records the week's realised P/L, charges and any money added to or
withdrawn from the fund. fundnav issues and redeems units at the previous
week's NAV and reports:
  - outstanding units and fund value
  - NAV per unit
  - NAV peak and drawdown from that peak

Entries are read from a CSV file or kept in a ledger (CSV or SQLite).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile   string
	logLevel  string
	logPretty bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "human readable log output")
}

func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-pretty") {
		c.Log.Pretty = logPretty
	}

	l, err := logger.New(c.Logger(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(l)

	cfg = c
	return nil
}
