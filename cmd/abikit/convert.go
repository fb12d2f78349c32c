package main

import (
	"fmt"

	"github.com/branched-services/go-abikit/baseconv"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a 256-bit unsigned value between binary, decimal and hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromBase, err := baseconv.ParseBase(from)
			if err != nil {
				return err
			}
			if to == "" {
				forms, err := baseconv.All(args[0], fromBase)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), forms)
			}

			toBase, err := baseconv.ParseBase(to)
			if err != nil {
				return err
			}
			out, err := baseconv.Convert(args[0], fromBase, toBase)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "dec", `Input base: "bin", "dec" or "hex"`)
	cmd.Flags().StringVar(&to, "to", "", `Output base; all bases when empty`)
	return cmd
}

func newCalcCmd(a *app) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "calc <lhs> <op> <rhs>",
		Short: "Apply + - * / % & | ^ << >> to two 256-bit unsigned values",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := baseconv.ParseBase(base)
			if err != nil {
				return err
			}
			out, err := baseconv.Calculate(args[0], baseconv.Operator(args[1]), args[2], b)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "base", "dec", `Base of both operands and the result: "bin", "dec" or "hex"`)
	return cmd
}
