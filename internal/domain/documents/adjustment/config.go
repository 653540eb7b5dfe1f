package adjustment

import "stockcard/internal/core/numerator"

const (
	// NumberPrefix for generated adjustment numbers (ADJ-2026-00001).
	NumberPrefix = "ADJ"

	// NumeratorStrategy defines the numbering strategy for this document type.
	NumeratorStrategy = numerator.StrategyStrict
)
