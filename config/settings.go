package config

import "time"

// EnvPrefix is the prefix of environment overrides, e.g. PAAPI_ACCESS_KEY_ID
// or PAAPI_HTTP_TIMEOUT.
const EnvPrefix = "PAAPI"

// Settings is the configuration of the paapi command.
type Settings struct {
	AccessKeyID     string `mapstructure:"access_key_id" json:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"secret_access_key" validate:"required"`
	AssociateTag    string `mapstructure:"associate_tag" json:"associate_tag"`
	Marketplace     string `mapstructure:"marketplace" json:"marketplace" validate:"required,oneof=us br ca cn de es fr in it jp mx uk"`

	HTTP  HTTPSettings  `mapstructure:"http" json:"http"`
	Crawl CrawlSettings `mapstructure:"crawl" json:"crawl"`
	Log   LogSettings   `mapstructure:"log" json:"log"`
}

type HTTPSettings struct {
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout" validate:"gte=0"`
	MaxAttempts int           `mapstructure:"max_attempts" json:"max_attempts" validate:"gte=1,lte=10"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" validate:"gte=0"`
}

type CrawlSettings struct {
	RequestThrottledRetryTimes          int    `mapstructure:"request_throttled_retry_times" json:"request_throttled_retry_times" validate:"gte=0"`
	RequestThrottledRetryPriorityAdjust int    `mapstructure:"request_throttled_retry_priority_adjust" json:"request_throttled_retry_priority_adjust"`
	WriteResponses                      bool   `mapstructure:"write_responses" json:"write_responses"`
	ResponseDir                         string `mapstructure:"response_dir" json:"response_dir"`
}

type LogSettings struct {
	Level string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error"`
}

// DefaultSettings lists every key, so each can be set from the environment.
func DefaultSettings() map[string]any {
	return map[string]any{
		"access_key_id":     "",
		"secret_access_key": "",
		"associate_tag":     "",
		"marketplace":       "us",

		"http.timeout":      "30s",
		"http.max_attempts": 3,
		"http.rate_limit":   1.0,

		"crawl.request_throttled_retry_times":           5,
		"crawl.request_throttled_retry_priority_adjust": -1,
		"crawl.write_responses":                         false,
		"crawl.response_dir":                            ".",

		"log.level": "info",
	}
}

// LoadSettings loads path (may be empty) over DefaultSettings and the
// PAAPI_* environment, and validates the result.
func LoadSettings(path string) (*Config[Settings], error) {
	return Load(path,
		WithDefaults[Settings](DefaultSettings()),
		WithEnv[Settings](EnvPrefix),
		WithValidation[Settings](),
	)
}
