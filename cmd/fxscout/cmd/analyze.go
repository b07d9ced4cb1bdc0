package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxscout/advisor"
	"github.com/rustyeddy/fxscout/feed"
	"github.com/rustyeddy/fxscout/journal"
)

var (
	barsFile   string
	instrument string
	timeframe  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate enriched bars and report the trade decision",
	Long: `Analyze runs one evaluation cycle over a CSV of analyzer-enriched bars.
The last bar in the file is the bar under decision; earlier bars feed the
rolling volatility fallbacks. Approved signals are appended to the journal.

Example:
  fxscout analyze --bars eurusd_1h.csv`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&barsFile, "bars", "b", "", "CSV file of enriched bars (required)")
	analyzeCmd.Flags().StringVarP(&instrument, "instrument", "i", "", "instrument override, e.g. EUR_USD")
	analyzeCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "bar interval override, e.g. 1h")
	_ = analyzeCmd.MarkFlagRequired("bars")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if instrument != "" {
		cfg.Analysis.Instrument = instrument
	}
	if timeframe != "" {
		cfg.Analysis.Timeframe = timeframe
	}

	bars, err := feed.LoadBars(barsFile)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	a := advisor.New(cfg.Analysis.Instrument, cfg.Profile(), j, newLogger())
	report := a.Evaluate(cfg.Analysis.Timeframe, bars)

	fmt.Print(report.String())

	if sig := report.Signal; sig != nil {
		fmt.Printf("    Position Size:  %.2f lots\n", a.PositionSize(*sig))
	}
	return nil
}
