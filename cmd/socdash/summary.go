package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"socdash/internal/feed"
	"socdash/internal/store"
	"socdash/internal/views"
)

func newSummaryCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "summary <snapshot.json>",
		Short: "Load a dashboard snapshot and print its derived metrics, trends and KPIs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfig(cmd); err != nil {
				return err
			}
			snap, err := feed.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			st := store.New()
			for _, a := range snap.Actions() {
				st.Dispatch(a)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(views.Build(st.State()))
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print single-line JSON")
	return cmd
}
