/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the translation attempt log",
	Long: `List, summarise, and clear the SQLite log of translation attempts.

The log holds metadata only: service, languages, outcome kind, status code,
latency, and a digest of the source text. Translated text is never stored.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent translation attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(viper.GetString("history.db"))
		if err != nil {
			return err
		}
		defer db.Close()

		attempts, err := db.ListAttempts(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No translation attempts recorded.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tSERVICE\tSOURCE\tTARGET\tKIND\tSTATUS\tLATENCY\tCHARS\tDETAIL")
		for _, a := range attempts {
			detail := a.Detail
			if r := []rune(detail); len(r) > 40 {
				detail = string(r[:37]) + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%dms\t%d\t%s\n",
				a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.Service,
				a.SourceLang, a.TargetLang, a.Kind, a.StatusCode,
				a.LatencyMs, a.TextRunes, detail)
		}
		return w.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt counts per outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(viper.GetString("history.db"))
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total attempts:  %d\n", stats.Total)
		for _, kind := range []string{"success", "pending", "failure", "transport_error"} {
			fmt.Fprintf(out, "  %-15s %d\n", kind+":", stats.ByKind[kind])
		}
		fmt.Fprintf(out, "Average latency: %.0fms\n", stats.AvgLatencyMs)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(viper.GetString("history.db"))
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearAttempts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d attempts.\n", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of attempts to show (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
