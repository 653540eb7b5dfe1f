package transfer

import "stockcard/internal/core/numerator"

const (
	// NumberPrefix for generated transfer numbers (TR-2026-00001).
	NumberPrefix = "TR"

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Transfers are primary warehouse documents, so we use Strict strategy.
	NumeratorStrategy = numerator.StrategyStrict
)
