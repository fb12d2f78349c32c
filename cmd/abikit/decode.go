package main

import (
	"fmt"

	"github.com/branched-services/go-abikit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		flags    itemFlags
		named    bool
		outputs  bool
		bytecode string
	)

	cmd := &cobra.Command{
		Use:   "decode <signature | abi-json | @file> <payload>",
		Short: "Decode call data, a log, revert data, deploy data or a tuple",
		Long: `Decode a payload against an ABI item.

The payload is 0x hex, or a JSON object: {"topics": [...], "data": "0x.."} for
events and {"bytecode": "0x..", "data": "0x.."} for constructors. For
constructors, hex deploy data may be given together with --bytecode.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := flags.resolve(args[0])
			if err != nil {
				return err
			}
			payload, err := abikit.ParsePayload(args[1])
			if err != nil {
				return err
			}

			if outputs {
				fn, ok := item.(*abikit.Function)
				if !ok {
					return fmt.Errorf("--outputs needs a function, got %s", item.Kind())
				}
				data, ok := payload.(abikit.Data)
				if !ok {
					return fmt.Errorf("--outputs needs hex return data")
				}
				values, err := abikit.DecodeOutputs(fn, data)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), values)
			}

			if data, ok := payload.(abikit.Data); ok && bytecode != "" {
				code, err := hexutil.Decode(bytecode)
				if err != nil {
					return fmt.Errorf("invalid --bytecode: %w", err)
				}
				payload = &abikit.Deployment{Bytecode: code, Data: hexutil.Bytes(data)}
			}

			if named {
				values, err := abikit.DecodeNamed(item, payload)
				if err != nil {
					a.logger.Sugar().Debugw("Decoding failed", zap.Error(err))
					return err
				}
				return writeJSON(cmd.OutOrStdout(), values)
			}
			values, err := abikit.Decode(item, payload)
			if err != nil {
				a.logger.Sugar().Debugw("Decoding failed", zap.Error(err))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), values)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&named, "named", false, "Key decoded values by parameter name")
	cmd.Flags().BoolVar(&outputs, "outputs", false, "Decode function return data instead of call data")
	cmd.Flags().StringVar(&bytecode, "bytecode", "", "Creation bytecode that prefixes hex constructor deploy data")
	return cmd
}
