package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mensylisir/flowctx/config"
	"github.com/mensylisir/flowctx/logger"
	"github.com/mensylisir/flowctx/record"
)

var (
	flowFile    string
	logLevelStr string
	verbose     bool
	logDir      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flowctx",
		Short:        "flowctx inspects and validates flow definitions",
		Long:         "flowctx is the CLI for the flowctx typed execution context framework.\nIt loads YAML flow definitions, validates their step schemas, and describes\nthe accumulated context record each step will be built with.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && logLevelStr == "info" {
				logLevelStr = "debug"
			}
			level, err := logrus.ParseLevel(logLevelStr)
			if err != nil {
				return fmt.Errorf("invalid log level '%s': %w", logLevelStr, err)
			}
			return logger.InitGlobalLogger(logDir, verbose, level)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flowFile, "file", "f", "", "Path to the flow definition YAML")
	rootCmd.PersistentFlags().StringVar(&logLevelStr, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for rotated log files (console only when empty)")

	rootCmd.AddCommand(newValidateCmd(), newDescribeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadFlow() (*config.FlowConfig, error) {
	if flowFile == "" {
		return nil, fmt.Errorf("a flow definition is required, pass one with -f")
	}
	cfg, err := config.NewLoader(flowFile).Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a flow definition and its step schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFlow()
			if err != nil {
				return err
			}
			if _, err := cfg.StepTypes(); err != nil {
				return err
			}
			logger.Log.ForApp().Infof("Flow %s is valid (%d steps)", cfg.Metadata.Name, len(cfg.Spec.Steps))
			fmt.Printf("flow %q: OK, %d steps\n", cfg.Metadata.Name, len(cfg.Spec.Steps))
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the accumulated context schema of every step in a flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFlow()
			if err != nil {
				return err
			}
			types, err := cfg.StepTypes()
			if err != nil {
				return err
			}

			fmt.Printf("flow: %s (%s)\n", cfg.Metadata.Name, cfg.Metadata.Description)
			for _, t := range types {
				fmt.Printf("\nstep %s:\n", t.Name())
				for _, f := range t.Fields() {
					switch f.Kind {
					case record.Optional:
						// YAML-declared defaults are literals and can be
						// shown without a real record.
						probe := record.New(nil)
						fmt.Printf("  %-20s %s (default: %v)\n", f.Name, f.Kind, f.Default(probe))
					default:
						fmt.Printf("  %-20s %s\n", f.Name, f.Kind)
					}
				}
			}
			return nil
		},
	}
}
