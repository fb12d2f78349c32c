package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/branched-services/go-abikit/internal/config"
	"github.com/branched-services/go-abikit/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "abikit",
		Short:         "Encode and decode EVM call data, logs, errors and constructor arguments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.NewConfig()
			l, err := logger.NewLogger(&logger.LoggerConfig{Debug: a.cfg.Debug})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.logger = l
			return nil
		},
	}

	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().String(config.LookupURL, config.DefaultLookupURL, `Signature database base URL`)
	rootCmd.PersistentFlags().Duration(config.LookupTimeout, config.DefaultLookupTimeout, `Timeout for each signature lookup request`)
	rootCmd.PersistentFlags().Int(config.LookupMaxRetries, config.DefaultLookupMaxRetries, `Retries for failed signature lookups`)

	rootCmd.AddCommand(newParamsCmd(a))
	rootCmd.AddCommand(newEncodeCmd(a))
	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newSelectorCmd(a))
	rootCmd.AddCommand(newLookupCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newCalcCmd(a))

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})

	return rootCmd
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}

// oneLine flattens an error for the terminal.
func oneLine(err error) string {
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if strings.HasPrefix(msg, "abikit: ") || strings.HasPrefix(msg, "baseconv: ") {
		return msg
	}
	return "abikit: " + msg
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
