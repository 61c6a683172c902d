package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/neoportfolio/internal/flagx"
	"github.com/dmitrijs2005/neoportfolio/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Only keys present in the
// file override the current values.
type JsonConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	DatabasePath        *string         `json:"database_path"`
	SecretKey           *string         `json:"secret_key"`
	TokenValidity       *timex.Duration `json:"token_validity"`
	LogLevel            *string         `json:"log_level"`
	LogBackend          *string         `json:"log_backend"`
	LogFormat           *string         `json:"log_format"`
	LogFile             *string         `json:"log_file"`
	RemoteTimeout       *timex.Duration `json:"remote_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	GeminiModel         *string         `json:"gemini_model"`
	GeminiEndpoint      *string         `json:"gemini_endpoint"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
	S3PublicBaseURL     *string         `json:"s3_public_base_url"`
}

// parseJson overlays the file named by -c/-config onto config. It panics if
// the file cannot be read or is not valid JSON.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogFile, c.LogFile)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.GeminiEndpoint, c.GeminiEndpoint)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)

	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.RemoteTimeout != nil {
		config.RemoteTimeout = c.RemoteTimeout.Duration
	}
	if c.OnlineCheckInterval != nil {
		config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
