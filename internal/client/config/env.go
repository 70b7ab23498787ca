package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIBase         = "HEALTHPLANNER_API_BASE"
	envDataDir         = "HEALTHPLANNER_DATA_DIR"
	envCredentialStore = "HEALTHPLANNER_CREDENTIAL_STORE"
	envRequestTimeout  = "HEALTHPLANNER_REQUEST_TIMEOUT"
	envDebug           = "HEALTHPLANNER_DEBUG"

	defaultEnvFile = ".env"
)

// parseEnv overlays Config with HEALTHPLANNER_* variables. Values from the
// dotenv file (-e/-env, else ./.env when present) are read first and the
// process environment wins over them. The file never modifies the process
// environment. Panics on a malformed file or value.
func parseEnv(cfg *Config) {
	vars := map[string]string{}

	file := flagx.EnvFileFlags()
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	fromFile, err := godotenv.Read(file)
	switch {
	case err == nil:
		vars = fromFile
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		panic(err)
	}

	for _, key := range []string{envAPIBase, envDataDir, envCredentialStore, envRequestTimeout, envDebug} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) {
	if v := vars[envAPIBase]; v != "" {
		cfg.APIBase = v
	}
	if v := vars[envDataDir]; v != "" {
		cfg.DataDir = v
	}
	if v := vars[envCredentialStore]; v != "" {
		cfg.CredentialStore = credentials.Kind(v)
	}
	if v := vars[envRequestTimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := vars[envDebug]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Debug = b
	}
}
