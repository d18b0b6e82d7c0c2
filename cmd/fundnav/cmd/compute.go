package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/rustyeddy/fundnav/ledger"
	"github.com/rustyeddy/fundnav/report"
	"github.com/spf13/cobra"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute NAV from a CSV of weekly entries",
	Long: `Read weekly entries from a CSV file and print the fund state for every week.

The input needs a date, realised_pnl, charges and funds_in_out column. An
optional outstanding_units value on the first row seeds the unit count.

Examples:
  fundnav compute -i entries.csv
  fundnav compute -i entries.csv -f csv -o nav.csv
  cat entries.csv | fundnav compute -i - -f json`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

var (
	computeInput        string
	computeOutput       string
	computeFormat       string
	computeInitialUnits float64
	computeNoOrderCheck bool
)

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().StringVarP(&computeInput, "input", "i", "", "entries CSV file, - for stdin (required)")
	computeCmd.MarkFlagRequired("input")
	addOutputFlags(computeCmd, &computeOutput, &computeFormat)
	addComputeFlags(computeCmd, &computeInitialUnits, &computeNoOrderCheck)
}

func addOutputFlags(c *cobra.Command, output, format *string) {
	c.Flags().StringVarP(output, "output", "o", "", "output file (default stdout)")
	c.Flags().StringVarP(format, "format", "f", "text", "output format: text, csv, json, org")
}

func addComputeFlags(c *cobra.Command, initialUnits *float64, noOrderCheck *bool) {
	c.Flags().Float64Var(initialUnits, "initial-units", fund.DefaultInitialUnits, "units issued for the first entry")
	c.Flags().BoolVar(noOrderCheck, "no-order-check", false, "process entries as given without checking date order")
}

func runCompute(cmd *cobra.Command, args []string) error {
	entries, err := readEntries(cmd, computeInput)
	if err != nil {
		return err
	}
	return computeAndWrite(cmd, entries, computeOutput, computeFormat, computeInitialUnits, computeNoOrderCheck)
}

func readEntries(cmd *cobra.Command, path string) ([]fund.Entry, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open entries: %w", err)
		}
		defer f.Close()
		r = f
	}

	entries, err := ledger.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return entries, nil
}

func computeAndWrite(cmd *cobra.Command, entries []fund.Entry, output, format string, initialUnits float64, noOrderCheck bool) error {
	opts := cfg.ComputeOptions()
	if cmd.Flags().Changed("initial-units") {
		opts = append(opts, fund.WithInitialUnits(initialUnits))
	}
	if noOrderCheck {
		opts = append(opts, fund.WithOrderCheck(false))
	}

	computed, err := fund.Compute(entries, opts...)
	if err != nil {
		logComputeError(err)
		return fmt.Errorf("compute: %w", err)
	}
	log.Debug().Int("entries", len(computed)).Msg("fund state computed")

	rep := report.New(cfg.Fund.Name, cfg.Fund.Currency, computed)

	if output == "" {
		return report.Write(cmd.OutOrStdout(), format, rep)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.Write(f, format, rep); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", output).Str("format", format).Int("entries", len(computed)).Msg("report written")
	return nil
}

func logComputeError(err error) {
	var (
		zu  *fund.ZeroUnitsError
		nav *fund.NonPositiveNAVError
		ord *fund.OrderingError
	)
	switch {
	case errors.As(err, &zu):
		log.Error().Int("index", zu.Index).Time("date", zu.Date).Float64("units", zu.Units).
			Msg("no outstanding units left to value the entry")
	case errors.As(err, &nav):
		log.Error().Int("index", nav.Index).Time("date", nav.Date).Str("field", nav.Field).Float64("value", nav.Value).
			Msg("nav is not positive")
	case errors.As(err, &ord):
		log.Error().Int("index", ord.Index).Time("date", ord.Date).Time("previous", ord.Previous).
			Msg("entries out of date order")
	}
}
