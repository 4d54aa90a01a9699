package cmd

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/timvw/panefm/internal/model"
	"github.com/timvw/panefm/internal/panes"
)

var (
	flagLsReverse bool
	flagLsJSON    bool
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "Print a directory listing as a pane would show it",
	Long: `Print the entries of a directory in pane order, one per line.

Directories are suffixed with "/". The synthetic ".." entry is included and
sorted like any other name. --reverse applies the same reversal as the
browser's sort toggle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path, err := panes.Resolve(".", dir)
		if err != nil {
			return err
		}
		entries, err := panes.List(path, flagLsReverse)
		if err != nil {
			return err
		}
		return printEntries(cmd.OutOrStdout(), entries, flagLsJSON)
	},
}

func init() {
	lsCmd.Flags().BoolVar(&flagLsReverse, "reverse", false, "reverse the sort order")
	lsCmd.Flags().BoolVar(&flagLsJSON, "json", false, "print entries as a JSON array")
	rootCmd.AddCommand(lsCmd)
}

func printEntries(w io.Writer, entries []model.Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		name := e.Name
		if e.IsDir && e.Name != model.ParentName {
			name += "/"
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
