package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/letshang/internal/flagx"
)

// JsonConfig mirrors Config for unmarshalling. Fields left out of the file
// keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC   string   `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP   string   `json:"endpoint_addr_http"`
	DatabaseDSN        string   `json:"database_dsn"`
	SecretKey          string   `json:"secret_key"`
	ShareBaseURL       string   `json:"share_base_url"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	LogLevel           string   `json:"log_level"`
	S3RootUser         string   `json:"s3_root_user"`
	S3RootPassword     string   `json:"s3_root_password"`
	S3Bucket           string   `json:"s3_bucket"`
	S3Region           string   `json:"s3_region"`
	S3BaseEndpoint     string   `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config, if any, onto config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.ShareBaseURL, c.ShareBaseURL)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}
