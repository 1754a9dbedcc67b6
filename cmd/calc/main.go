// Command calc is the terminal calculator. It reads the same ONSITE_*
// configuration as the API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/config"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/repl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "calc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	shellCfg := repl.Config{
		HistoryFile: historyFile(),
		Timeout:     cfg.Interpreter.Timeout,
	}
	if cfg.Interpreter.Enabled() {
		translator, err := interpret.NewGemini(ctx, interpret.Config{
			APIKey:        cfg.Interpreter.GeminiAPIKey,
			Model:         cfg.Interpreter.Model,
			MaxTextLength: cfg.Interpreter.MaxTextLength,
		}, logger.Named("interpret"))
		if err != nil {
			return err
		}
		shellCfg.Translator = translator
	}

	engine := calc.New(calc.WithDenominatorBase(cfg.Calculator.DenominatorBase))
	return repl.New(engine, shellCfg, os.Stdout, logger).Run(ctx)
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "onsite-calculator")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
