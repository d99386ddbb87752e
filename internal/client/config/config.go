// Package config loads runtime settings for hangctl.
//
// Sources, later overriding earlier: built-in defaults, a JSON file given by
// -c/-config, LETSHANG_* environment variables, then global flags.
package config

import "time"

type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	// SecretKey is only used by the token command to sign development tokens.
	SecretKey      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SecretKey = "secretKey"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config. args are the global flags, i.e. everything
// before the command name.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
