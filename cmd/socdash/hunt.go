package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"socdash/internal/hunt"
)

func newHuntCmd() *cobra.Command {
	var (
		latency time.Duration
		empty   float64
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "hunt <query>",
		Short: "Run one threat hunt and print the finished task as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			hc := cfg.Socdash.Hunt
			if cmd.Flags().Changed("latency") {
				hc.LatencyMin, hc.LatencyMax = latency, latency
			}
			if cmd.Flags().Changed("empty-probability") {
				hc.EmptyProbability = &empty
			}
			if cmd.Flags().Changed("seed") {
				hc.Seed = seed
			}

			backend, err := newHuntBackend(hc)
			if err != nil {
				return err
			}
			runner := hunt.NewRunner(backend)
			defer runner.Close()

			runner.Start(strings.Join(args, " "))
			runner.Wait()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(runner.Current())
		},
	}
	cmd.Flags().DurationVar(&latency, "latency", 0, "Fixed backend latency (overrides hunt.latency_min/max)")
	cmd.Flags().Float64Var(&empty, "empty-probability", 0.2, "Chance that a hunt finds nothing")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	return cmd
}
