package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/fundnav/fund"
	"github.com/rustyeddy/fundnav/ledger"
	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the stored weekly entries",
	Long: `Add, list and remove weekly entries in the ledger configured under
"ledger" in the config file, and compute the fund from them.

Subcommands:
  add      - Record a week
  list     - List recorded weeks
  show     - Show one entry by ID
  rm       - Remove an entry by ID
  compute  - Compute NAV over all recorded weeks

Examples:
  fundnav ledger add --date 2025-01-06 --flow 100000
  fundnav ledger add --date 2025-01-13 --pnl 5000 --charges 500
  fundnav ledger compute -f org`,
}

var ledgerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a week",
	Args:  cobra.NoArgs,
	RunE:  runLedgerAdd,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded weeks",
	Args:  cobra.NoArgs,
	RunE:  runLedgerList,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

var ledgerRmCmd = &cobra.Command{
	Use:   "rm <entry-id>",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerRm,
}

var ledgerComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute NAV over all recorded weeks",
	Args:  cobra.NoArgs,
	RunE:  runLedgerCompute,
}

var (
	addDate    string
	addPnL     float64
	addCharges float64
	addFlow    float64
	addUnits   float64

	ledgerOutput       string
	ledgerFormat       string
	ledgerInitialUnits float64
	ledgerNoOrderCheck bool
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerAddCmd)
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerRmCmd)
	ledgerCmd.AddCommand(ledgerComputeCmd)

	ledgerAddCmd.Flags().StringVar(&addDate, "date", "", "week date YYYY-MM-DD (required)")
	ledgerAddCmd.Flags().Float64Var(&addPnL, "pnl", 0, "realised profit/loss for the week")
	ledgerAddCmd.Flags().Float64Var(&addCharges, "charges", 0, "charges and taxes for the week")
	ledgerAddCmd.Flags().Float64Var(&addFlow, "flow", 0, "funds added (positive) or withdrawn (negative)")
	ledgerAddCmd.Flags().Float64Var(&addUnits, "units", 0, "opening unit count, first week only")
	ledgerAddCmd.MarkFlagRequired("date")

	addOutputFlags(ledgerComputeCmd, &ledgerOutput, &ledgerFormat)
	addComputeFlags(ledgerComputeCmd, &ledgerInitialUnits, &ledgerNoOrderCheck)
}

func openLedger() (ledger.Store, error) {
	s, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return s, nil
}

func runLedgerAdd(cmd *cobra.Command, args []string) error {
	d, err := time.Parse(time.DateOnly, addDate)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	s, err := openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	entryID, err := s.Add(fund.Entry{
		Date:             d,
		RealisedPnL:      addPnL,
		Charges:          addCharges,
		FundsInOut:       addFlow,
		OutstandingUnits: addUnits,
	})
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s (%s)\n", d.Format(time.DateOnly), entryID)
	return nil
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	s, err := openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List()
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tP/L\tCharges\tFunds In/Out\tNet")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			e.ID, e.Date.Format(time.DateOnly), e.RealisedPnL, e.Charges, e.FundsInOut, e.NetPL()+e.FundsInOut)
	}
	return tw.Flush()
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	s, err := openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.Get(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "ID:            %s\n", e.ID)
	fmt.Fprintf(w, "Date:          %s\n", e.Date.Format(time.DateOnly))
	fmt.Fprintf(w, "Realised P/L:  %.2f\n", e.RealisedPnL)
	fmt.Fprintf(w, "Charges:       %.2f\n", e.Charges)
	fmt.Fprintf(w, "Funds In/Out:  %.2f\n", e.FundsInOut)
	if e.OutstandingUnits != 0 {
		fmt.Fprintf(w, "Opening Units: %.4f\n", e.OutstandingUnits)
	}
	return nil
}

func runLedgerRm(cmd *cobra.Command, args []string) error {
	s, err := openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.Get(args[0])
	if err != nil {
		return err
	}
	if err := s.Remove(e.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s (%s)\n", e.Date.Format(time.DateOnly), e.ID)
	return nil
}

func runLedgerCompute(cmd *cobra.Command, args []string) error {
	s, err := openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List()
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	return computeAndWrite(cmd, entries, ledgerOutput, ledgerFormat, ledgerInitialUnits, ledgerNoOrderCheck)
}
