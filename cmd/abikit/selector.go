package main

import (
	"fmt"

	"github.com/branched-services/go-abikit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

func newSelectorCmd(a *app) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "selector <signature | abi-json | @file>",
		Short: "Print the 4-byte selector of a function or error, or the topic of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := flags.resolve(args[0])
			if err != nil {
				return err
			}

			var out string
			switch it := item.(type) {
			case *abikit.Event:
				topic, err := abikit.Topic(it)
				if err != nil {
					return err
				}
				out = topic.Hex()
			default:
				selector, err := abikit.Selector(item)
				if err != nil {
					return err
				}
				out = hexutil.Encode(selector[:])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
