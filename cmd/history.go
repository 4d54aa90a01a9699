package cmd

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/timvw/panefm/internal/journal"
)

var (
	flagHistoryN    int
	flagHistoryJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent move, copy and delete operations",
	Long: `Print the most recent entries of the operation journal, oldest first.

The journal path comes from the "journal" config key (default
$XDG_STATE_HOME/panefm/journal.jsonl).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.JournalPath()
		if path == "" {
			fmt.Fprintln(os.Stderr, "journal is disabled")
			return nil
		}
		records, err := journal.ReadFile(path, flagHistoryN)
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), records, flagHistoryJSON)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryN, "number", "n", 20, "number of records to show (0 for all)")
	historyCmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "print records as a JSON array")
	rootCmd.AddCommand(historyCmd)
}

func printHistory(w io.Writer, records []journal.Record, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []journal.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s  %s\n", r.TS.Local().Format("2006-01-02 15:04:05"), r.Summary()); err != nil {
			return err
		}
	}
	return nil
}
