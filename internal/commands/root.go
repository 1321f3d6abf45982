package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "synthfeed",
	Short: "Deterministic procedural market-data simulator",
	Long: `A deterministic market-data simulator: given a ticker symbol, a reference
price and a point in simulated time, it synthesizes second-resolution prices,
minute OHLCV bars and calendar-aware multi-day series with no external data
source. Identical inputs always reproduce identical output.

Components:
• Seeded hash and smooth-noise price kernel (replayable, no stored state)
• Minute bar aggregation with a U-shaped intraday volume profile
• Weekend-aware calendar and multi-day series assembly
• Live quote streaming over NATS, WebSocket fan-out and a REST API`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
