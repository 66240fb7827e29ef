package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/secret-passage/internal/games/passage"
	"github.com/vovakirdan/secret-passage/internal/platform/tui"
	"github.com/vovakirdan/secret-passage/internal/storage"
)

var (
	flagRunsTUI   bool
	flagRunsClear bool
	flagCodes     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show finished runs",
	Long: `Display the ten fastest finished runs and overall statistics.

Examples:
  passage runs
  passage runs --tui      # Browse all runs interactively
  passage runs --codes    # List issued access codes
  passage runs --clear    # Delete the run history`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs in an interactive table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs")
	runsCmd.Flags().BoolVar(&flagCodes, "codes", false, "List issued access codes")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")

	case flagCodes:
		printCodes(store)

	case flagRunsTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRunsTable(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	default:
		printRuns(store)
	}
}

func printRuns(store *storage.Store) {
	runs, err := store.FastestRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Fastest Runs - Secret Passage")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'passage play' and reach the last flag to record one!")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-7s  %s\n", "Rank", "Time", "Falls", "Secrets", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-7s  %s\n", "----", "----", "-----", "-------", "----")

	for i, r := range runs {
		dateStr := r.FinishedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-9s  %-5d  %-7d  %s\n", i+1, passage.FormatDuration(r.Duration), r.Falls, r.Secrets, dateStr)
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %s  Average: %s  Falls: %d  Secrets: %d\n",
		stats.Runs,
		passage.FormatDuration(stats.BestDuration),
		passage.FormatDuration(stats.AvgDuration),
		stats.TotalFalls,
		stats.TotalSecrets,
	)
}

func printCodes(store *storage.Store) {
	codes, err := store.AccessCodes(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving access codes: %v\n", err)
		return
	}

	if len(codes) == 0 {
		fmt.Println("No access codes issued yet.")
		return
	}

	fmt.Printf("  %-8s  %-12s  %s\n", "Code", "Room", "Issued")
	fmt.Printf("  %-8s  %-12s  %s\n", "----", "----", "------")
	for _, c := range codes {
		fmt.Printf("  %-8s  %-12s  %s\n", c.Code, c.RoomID, c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
