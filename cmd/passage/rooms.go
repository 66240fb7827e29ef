package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/secret-passage/internal/config"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the room sequence",
	Long: `Shows the rooms in play order, after validation.

Examples:
  passage rooms
  passage rooms --rooms ./my-rooms`,
	Args: cobra.NoArgs,
	Run:  runRooms,
}

func runRooms(_ *cobra.Command, _ []string) {
	rooms, err := loadRooms(flagRooms, config.DefaultPassageConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rooms: %v\n", err)
		os.Exit(1)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, r := range rooms {
		if len(r.ID) > maxIDLen {
			maxIDLen = len(r.ID)
		}
	}

	fmt.Println("Room sequence:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-9s  %-6s  %s\n", "#", maxIDLen, "ID", "Platforms", "Moving", "Name")
	fmt.Printf("  %-3s  %-*s  %-9s  %-6s  %s\n", "-", maxIDLen, "--", "---------", "------", "----")

	for i, r := range rooms {
		fmt.Printf("  %-3d  %-*s  %-9d  %-6d  %s\n", i+1, maxIDLen, r.ID, len(r.Platforms), len(r.Moving), r.Name)
	}

	fmt.Println()
	fmt.Println("Run 'passage play' to start.")
}
