package core

// Config runtime configuration shared by services and workers.
type Config struct {
	// Genesis is the unix timestamp block 0 started at
	Genesis int64 `json:"genesis"`
	// PriceStalenessBlocks bounds how old an oracle observation may be, in
	// blocks, before reads reject it
	PriceStalenessBlocks int64 `json:"price_staleness_blocks"`
	// Operators are the user ids allowed to call governance operations
	Operators []string `json:"operators"`
	// PriceOracle price feed settings
	PriceOracle PriceOracleConfig `json:"price_oracle"`
}

// PriceOracleConfig price feed settings
type PriceOracleConfig struct {
	EndPoint string `json:"end_point"`
}

// IsOperator reports whether userID may call governance-gated operations.
func (c *Config) IsOperator(userID string) bool {
	for _, op := range c.Operators {
		if op == userID {
			return true
		}
	}
	return false
}
