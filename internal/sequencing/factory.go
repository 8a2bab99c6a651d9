package sequencing

import "firesim/internal/domain"

// CreateStrategy resolves the configured withdrawal strategy, falling back
// to standard for nil or unknown configuration.
func CreateStrategy(config *domain.WithdrawalConfig) Strategy {
	if config == nil {
		return NewStandardStrategy()
	}

	switch config.Strategy {
	case "tax_efficient":
		return NewTaxEfficientStrategy()
	case "custom":
		return NewCustomStrategy(config.CustomSequence)
	default:
		return NewStandardStrategy()
	}
}
