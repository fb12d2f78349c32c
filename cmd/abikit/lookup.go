package main

import (
	"fmt"

	"github.com/branched-services/go-abikit"
	"github.com/branched-services/go-abikit/lookup"
	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "lookup <selector | topic>",
		Short: "Look up candidate signatures for a 4-byte selector or 32-byte event topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := lookup.DefaultConfig()
			cfg.BaseURL = a.cfg.LookupConfig.Url
			cfg.Timeout = a.cfg.LookupConfig.Timeout
			cfg.MaxRetries = uint64(a.cfg.LookupConfig.MaxRetries)

			client := lookup.NewClient(cfg, a.logger)
			names, err := client.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("%w: no signatures registered for %s", abikit.ErrNotFound, args[0])
			}

			out := cmd.OutOrStdout()
			if !canonical {
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			kind, _ := lookup.KindOf(args[0])
			prefix := "function "
			if kind == lookup.QueryEvent {
				prefix = "event "
			}
			sources := make([]string, len(names))
			for i, name := range names {
				sources[i] = prefix + name
			}
			for _, item := range abikit.ClassifyCandidates(sources) {
				sig, err := abikit.Signature(item)
				if err != nil {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", item.Kind(), sig)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonical, "classify", false, "Classify each candidate and print its kind and canonical signature")
	return cmd
}
