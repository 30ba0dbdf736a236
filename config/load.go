package config

import "github.com/fox-one/pkg/config"

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("LENDPOOL")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaults(cfg)
	return nil
}

func defaults(cfg *Config) {
	if cfg.Ledger.PriceStalenessBlocks == 0 {
		// 10 minutes of 15-second blocks
		cfg.Ledger.PriceStalenessBlocks = 40
	}
}
