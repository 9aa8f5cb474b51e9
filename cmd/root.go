package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/netcfgtools/fgt-dup-detector/internal/app"
	apperrors "github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	reporter  string
	noColor   bool
	unordered string
	ignored   string
)

var rootCmd = &cobra.Command{
	Use:   "fgt-dup-detector <config-file>...",
	Short: "Detects same-named objects with different definitions across FortiGate config exports.",
	Long: `fgt-dup-detector parses FortiGate configuration exports, groups address,
address-group, service and service-group objects by name across every file and
VDOM, and reports attribute-level differences between same-named definitions,
so silent configuration drift is caught before objects are merged or
synchronized centrally.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if err != nil {
			userMsg, suggestion, isUserFacing := apperrors.GetUserFacingMessage(err)
			if isUserFacing {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
				if suggestion != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
				}
			} else {
				fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", err)
			}
			return err
		}

		runErr := application.Run(cmd.Context(), args)
		if runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .fgt-dup-detector.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&reporter, "reporter", "", "Report output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored text output")
	rootCmd.PersistentFlags().StringVar(&unordered, "unordered-attributes", "", "Comma-separated attribute keys compared as unordered sets (e.g. 'member,exclude-member')")
	rootCmd.PersistentFlags().StringVar(&ignored, "ignored-attributes", "", "Comma-separated attribute keys excluded from comparison (e.g. 'uuid')")

	viper.SetEnvPrefix("FGTDUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".fgt-dup-detector")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	// Only flags the user actually set may override file/env values;
	// binding unchanged flags would mask defaults with empty strings.
	bindings := map[string]string{
		"settings.log_level":                     "log-level",
		"settings.log_format":                    "log-format",
		"settings.reporter":                      "reporter",
		"settings.reporter_config.text.no_color": "no-color",
		"compare.unordered_attributes":           "unordered-attributes",
		"parser.fortios.ignored_attributes":      "ignored-attributes",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag != nil && flag.Changed {
			if err := viper.BindPFlag(key, flag); err != nil {
				return apperrors.Wrap(err, apperrors.CodeInternal, "failed to bind flag "+name)
			}
		}
	}
	return nil
}
