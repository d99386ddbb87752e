package config

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by parseEnv.
const EnvPrefix = "LETSHANG_"

// dotenvFiles are loaded, if present, before the environment is read.
// Variables already set in the process environment win.
var dotenvFiles = []string{".env"}

// parseEnv overlays LETSHANG_* variables onto config. Unset variables leave
// the current value alone.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	strVars := map[string]*string{
		"GRPC_ADDR":        &config.EndpointAddrGRPC,
		"HTTP_ADDR":        &config.EndpointAddrHTTP,
		"DATABASE_DSN":     &config.DatabaseDSN,
		"SECRET_KEY":       &config.SecretKey,
		"SHARE_BASE_URL":   &config.ShareBaseURL,
		"LOG_LEVEL":        &config.LogLevel,
		"S3_ROOT_USER":     &config.S3RootUser,
		"S3_ROOT_PASSWORD": &config.S3RootPassword,
		"S3_BUCKET":        &config.S3Bucket,
		"S3_REGION":        &config.S3Region,
		"S3_BASE_ENDPOINT": &config.S3BaseEndpoint,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "CORS_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
}
