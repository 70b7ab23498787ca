package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/flagx"
	"github.com/dmitrijs2005/healthplanner/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from a zero value, so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBase         *string         `json:"api_base"`
	DataDir         *string         `json:"data_dir"`
	CredentialStore *string         `json:"credential_store"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	Debug           *bool           `json:"debug"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens. Panics on read or
// unmarshal errors.
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

	if jc.APIBase != nil {
		cfg.APIBase = *jc.APIBase
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.CredentialStore != nil {
		cfg.CredentialStore = credentials.Kind(*jc.CredentialStore)
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
