package config

import (
	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
)

// Config node configuration
type Config struct {
	DB     db.Config   `json:"db"`
	Ledger core.Config `json:"ledger"`
	App    App         `json:"app"`
}

// App application settings
type App struct {
	Location string `json:"location"`
}
