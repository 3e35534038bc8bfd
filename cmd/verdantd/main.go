// Package main implements the verdantd daemon and CLI.
//
// verdantd serves the journaling analysis API: entry storage with derived
// sentiment and themes, weekly/monthly insights, progress tracking, and
// title/prompt generation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/analysis"
	"github.com/fyrsmithlabs/verdant/internal/config"
	"github.com/fyrsmithlabs/verdant/internal/gemini"
	vhttp "github.com/fyrsmithlabs/verdant/internal/http"
	"github.com/fyrsmithlabs/verdant/internal/insights"
	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/prompts"
	"github.com/fyrsmithlabs/verdant/internal/store"
	"github.com/fyrsmithlabs/verdant/internal/titles"
)

// Version information (set via ldflags during build).
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "verdantd",
	Short: "Journaling analysis service",
	Long: `verdantd serves the journaling analysis API: entry storage with derived
sentiment and themes, weekly and monthly insights, streak and milestone
progress, and title and prompt generation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/verdant/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("starting verdantd",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("default_mode", cfg.Insights.DefaultMode),
		zap.Bool("gemini_configured", cfg.Gemini.APIKey != ""))

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	client := gemini.New(cfg.Gemini)
	insightSvc := insights.NewService(client, logger)
	titleSvc := titles.NewService(client, logger)
	promptSvc := prompts.NewService(client, logger)

	srv, err := vhttp.NewServer(st, insightSvc, titleSvc, promptSvc, logger, &vhttp.Config{
		Host:        "0.0.0.0",
		Port:        cfg.Server.Port,
		DefaultMode: insights.Mode(cfg.Insights.DefaultMode),
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	default:
		return store.NewMemory(), nil
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze text locally",
	Long: `Analyze runs the local pipeline on the given text (or stdin when the
argument is "-") and prints the derived sentiment, themes, and a suggested
title as JSON. No network calls are made.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	result := struct {
		Sentiment analysis.Sentiment `json:"sentiment"`
		Themes    []string           `json:"themes"`
		Title     string             `json:"title"`
	}{
		Sentiment: analysis.Score(text),
		Themes:    analysis.Themes(text),
		Title:     titles.Local(text).Title,
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "verdantd by Fyrsmith Labs\n")
		fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "Commit:     %s\n", gitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", buildDate)
	},
}
