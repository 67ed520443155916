package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/padips/padips-cli/internal/flagx"
	"github.com/padips/padips-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify timeouts either as strings like
// "10s" or as integer nanoseconds. Zero-valued fields are left alone so a
// partial file only overrides what it names.
type JsonConfig struct {
	BaseURL            string         `json:"base_url"`
	RealtimeURL        string         `json:"realtime_url"`
	APIKey             string         `json:"api_key"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	SecondsPerQuestion int            `json:"seconds_per_question"`
	PointsPerCorrect   float64        `json:"points_per_correct"`
	DatabasePath       string         `json:"database_path"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic; config problems should stop startup immediately.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RealtimeURL != "" {
		cfg.RealtimeURL = jc.RealtimeURL
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SecondsPerQuestion != 0 {
		cfg.SecondsPerQuestion = jc.SecondsPerQuestion
	}
	if jc.PointsPerCorrect != 0 {
		cfg.PointsPerCorrect = jc.PointsPerCorrect
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
