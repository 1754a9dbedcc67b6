package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/calculator"
	"onsite-calculator/internal/config"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// newCalculatorHandler builds the engine and, when configured, the
// translator behind /calculator/interpret.
func newCalculatorHandler(ctx context.Context, cfg *config.Config) (*calculator.Handler, error) {
	engine := calc.New(calc.WithDenominatorBase(cfg.Calculator.DenominatorBase))

	if !cfg.Interpreter.Enabled() {
		observability.Logger.Info("interpreter disabled")
		return calculator.NewHandler(engine), nil
	}

	translator, err := interpret.NewGemini(ctx, interpret.Config{
		APIKey:        cfg.Interpreter.GeminiAPIKey,
		Model:         cfg.Interpreter.Model,
		MaxTextLength: cfg.Interpreter.MaxTextLength,
	}, observability.Logger.Named("interpret"))
	if err != nil {
		return nil, fmt.Errorf("creating translator: %w", err)
	}

	observability.Logger.Info("interpreter enabled",
		zap.String("provider", cfg.Interpreter.Provider),
		zap.String("model", cfg.Interpreter.Model),
		zap.Duration("timeout", cfg.Interpreter.Timeout),
	)
	return calculator.NewHandler(engine, calculator.WithTranslator(translator, cfg.Interpreter.Timeout)), nil
}
