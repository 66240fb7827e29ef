// passage is a terminal platformer: clear every room in order, and look for
// the hidden passage on the way.
//
// Usage:
//
//	passage play             - Play the rooms
//	passage rooms            - List the room sequence
//	passage runs             - Show finished runs and issued access codes
//	passage serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible access codes
//	--db <path>     - Set database path (default: ~/.passage/runs.db)
//	--log <path>    - Set log file path (default: ~/.passage/passage.log)
//	--verbose       - Log debug output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
	flagRooms   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Secret Passage - a platformer in your terminal",
	Long: `Secret Passage is a small platformer that runs in your terminal.
Reach the goal of each room to move on. Somewhere there is a passage
that does not look like one.

Available commands:
  play     - Play the rooms
  rooms    - List the room sequence
  runs     - View finished runs
  serve    - Start SSH server for remote play

Examples:
  passage play
  passage play --rooms ./my-rooms --watch
  passage runs --tui
  passage serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.passage/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.passage/passage.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug output")
	rootCmd.PersistentFlags().StringVar(&flagRooms, "rooms", "", "Directory of room YAML files (default: built-in rooms)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
