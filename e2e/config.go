package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_GATEWAY_URL points at a live chat gateway; the suite is skipped without it
	GatewayURL string `envconfig:"E2E_GATEWAY_URL"`
	Username   string `envconfig:"E2E_USERNAME"`
	Secret     string `envconfig:"E2E_SECRET"`
	Room       string `envconfig:"E2E_ROOM" default:"103582791429594873"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
