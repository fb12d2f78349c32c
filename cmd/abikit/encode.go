package main

import (
	"fmt"

	"github.com/branched-services/go-abikit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		flags           itemFlags
		packed          bool
		bytecode        string
		requireBytecode bool
	)

	cmd := &cobra.Command{
		Use:   "encode <signature | abi-json | @file> [args...]",
		Short: "Encode arguments as call data, a log, revert data, deploy data or a tuple",
		Long: `Encode arguments for an ABI item.

Arguments are positional strings: integers in decimal or 0x hex, addresses and
byte strings in 0x hex, and arrays or tuples as JSON.

Functions and errors print selector-prefixed hex, constructors print bytecode
followed by the arguments, tuples print standard or --packed encoding, and
events print a JSON object with topics and data.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := flags.resolve(args[0])
			if err != nil {
				return err
			}

			opts := []abikit.EncodeOption{abikit.WithPacked(packed)}
			if bytecode != "" {
				code, err := hexutil.Decode(bytecode)
				if err != nil {
					return fmt.Errorf("invalid --bytecode: %w", err)
				}
				opts = append(opts, abikit.WithBytecode(code))
			}
			if requireBytecode {
				opts = append(opts, abikit.WithRequireBytecode())
			}

			payload, err := abikit.Encode(item, args[1:], opts...)
			if err != nil {
				a.logger.Sugar().Debugw("Encoding failed", zap.Error(err))
				return err
			}
			return writePayload(cmd, payload)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&packed, "packed", false, "Use packed encoding for tuples")
	cmd.Flags().StringVar(&bytecode, "bytecode", "", "Creation bytecode to prefix constructor arguments with")
	cmd.Flags().BoolVar(&requireBytecode, "require-bytecode", false, "Fail constructor encoding when --bytecode is not set")
	return cmd
}

func writePayload(cmd *cobra.Command, payload abikit.Payload) error {
	switch p := payload.(type) {
	case abikit.Data:
		_, err := fmt.Fprintln(cmd.OutOrStdout(), p.Hex())
		return err
	default:
		return writeJSON(cmd.OutOrStdout(), p)
	}
}
