package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synthfeed/internal/symbols"
	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/logger"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Manage simulated symbols",
	Long:  "Commands for viewing the simulated symbol universe",
}

var listSymbolsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all symbols",
	Long:  "List all simulated symbols and their reference prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.New(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		symbolsMgr := symbols.NewManager(log)

		sector, _ := cmd.Flags().GetString("sector")

		fmt.Printf("%-8s %-24s %-12s %s\n", "SYMBOL", "NAME", "SECTOR", "BASE PRICE")
		count := 0
		for _, info := range symbolsMgr.List() {
			if sector != "" && info.Sector != sector {
				continue
			}
			fmt.Printf("%-8s %-24s %-12s %.2f\n", info.Symbol, info.Name, info.Sector, info.BasePrice)
			count++
		}
		fmt.Printf("\n%d symbols\n", count)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.AddCommand(listSymbolsCmd)

	listSymbolsCmd.Flags().String("sector", "", "Filter by sector")
}
