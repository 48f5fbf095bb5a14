package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "polymarket-agent",
	Short: "Polymarket trading agent",
	Long: `Polymarket trading agent that fetches markets and events from the
Gamma API, gathers news context, asks an LLM superforecaster for calibrated
probabilities, and optionally executes the single best trade per run on the
CLOB.

Market and event text can be indexed into a local retrieval store to narrow
the autonomous pipeline to relevant markets.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
