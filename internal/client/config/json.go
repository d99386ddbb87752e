package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/letshang/internal/flagx"
)

// JsonConfig is the on-disk shape. RequestTimeout is a time.ParseDuration
// string such as "5s".
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	AccessToken        string `json:"access_token"`
	SecretKey          string `json:"secret_key"`
	RequestTimeout     string `json:"request_timeout"`
}

// parseJson overlays cfg with the non-empty values of the file named by
// -c/-config. Panics on read, unmarshal or duration errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.AccessToken != "" {
		cfg.AccessToken = jc.AccessToken
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
