package calc

import "onsite-calculator/internal/measure"

// Option configures an Engine.
type Option func(*Engine)

// WithDenominatorBase sets the fraction granularity used when formatting
// measurement results. Values <= 0 keep the default of 16.
func WithDenominatorBase(base int) Option {
	return func(e *Engine) {
		if base > 0 {
			e.base = base
		}
	}
}

func applyOptions(opts []Option) *Engine {
	e := &Engine{base: measure.DefaultDenominator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
