package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ga "github.com/njchilds90/goalgebra"
	"github.com/njchilds90/goalgebra/internal/config"
	"github.com/njchilds90/goalgebra/internal/server"
)

var (
	configPath string
	addr       string
	logLevel   string
	maxSteps   int

	rootCmd = &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the goalgebra tools over HTTP",
		Long: `mcp-server runs an HTTP endpoint that combines terms, multiplies and
divides expressions and rearranges equations for AI agent frameworks.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	callCmd = &cobra.Command{
		Use:   "call",
		Short: "Execute one tool request read from stdin and print the response",
		Args:  cobra.NoArgs,
		RunE:  runCall,
	}

	schemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the tool schema for agent registration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), ga.MCPToolSpec())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(callCmd)
	callCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Rearrangement step limit, overrides the config file")

	rootCmd.AddCommand(schemaCmd)
}

// loadConfig applies command-line overrides on top of the loaded config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if maxSteps > 0 {
		cfg.Rearrange.MaxSteps = maxSteps
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := server.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting goalgebra tool server",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Int("max_steps", cfg.Rearrange.MaxSteps),
	)
	return server.New(cfg, logger).Run(ctx)
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return call(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Rearrange.MaxSteps)
}

func call(in io.Reader, out io.Writer, steps int) error {
	req, err := server.DecodeToolRequest(in)
	if err != nil {
		return err
	}
	resp := ga.HandleToolCallWithOptions(req, ga.ToolOptions{MaxSteps: steps})
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
