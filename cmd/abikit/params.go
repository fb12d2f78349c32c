package main

import (
	"fmt"

	"github.com/branched-services/go-abikit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

type itemInfo struct {
	Kind            string             `json:"kind"`
	Name            string             `json:"name,omitempty"`
	Signature       string             `json:"signature"`
	Selector        string             `json:"selector,omitempty"`
	Topic           string             `json:"topic,omitempty"`
	Anonymous       bool               `json:"anonymous,omitempty"`
	StateMutability string             `json:"stateMutability,omitempty"`
	Inputs          []abikit.Parameter `json:"inputs"`
	Outputs         []abikit.Parameter `json:"outputs,omitempty"`
}

func describe(item abikit.Item) (*itemInfo, error) {
	sig, err := abikit.Signature(item)
	if err != nil {
		return nil, err
	}
	info := &itemInfo{
		Kind:      item.Kind().String(),
		Name:      abikit.Name(item),
		Signature: sig,
		Inputs:    abikit.Parameters(item),
	}

	switch it := item.(type) {
	case *abikit.Function:
		info.StateMutability = it.StateMutability
		info.Outputs = it.Outputs
	case *abikit.Constructor:
		info.StateMutability = it.StateMutability
	case *abikit.Event:
		info.Anonymous = it.Anonymous
		if !it.Anonymous {
			topic, err := abikit.Topic(it)
			if err != nil {
				return nil, err
			}
			info.Topic = topic.Hex()
		}
	}
	if item.Kind() == abikit.KindFunction || item.Kind() == abikit.KindError {
		selector, err := abikit.Selector(item)
		if err != nil {
			return nil, err
		}
		info.Selector = hexutil.Encode(selector[:])
	}
	return info, nil
}

func newParamsCmd(a *app) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "params <signature | abi-json | @file>",
		Short: "Show the kind, canonical signature and parameters of an ABI item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := flags.resolve(args[0])
			if err != nil {
				return err
			}
			info, err := describe(item)
			if err != nil {
				return err
			}
			a.logger.Sugar().Debugw("Resolved item",
				"kind", info.Kind,
				"signature", info.Signature,
			)
			if err := writeJSON(cmd.OutOrStdout(), info); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
