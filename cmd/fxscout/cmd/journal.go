package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxscout/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the trade journal",
	Long: `Inspect the append-only journal of approved signals.

Subcommands:
  stats - entry count summary
  list  - print every journaled signal in order`,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print journal summary statistics",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled signals in append order",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalListCmd)
}

func openJournal() (journal.Journal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	fmt.Println(j.Stats())
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	for _, e := range j.Entries() {
		fmt.Printf("%s  %s  %-4s entry=%.5f stop=%.5f target=%.5f rr=%.2f prob=%d%%  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Instrument,
			e.Direction,
			e.EntryPrice,
			e.StopPrice,
			e.TargetPrice,
			e.RewardRatio,
			e.Probability,
			e.Reason,
		)
	}
	return nil
}
