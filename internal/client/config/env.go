package config

import "os"

const EnvPrefix = "LETSHANG_"

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "SERVER_ADDR"); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "ACCESS_TOKEN"); ok && v != "" {
		cfg.AccessToken = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SECRET_KEY"); ok && v != "" {
		cfg.SecretKey = v
	}
}
