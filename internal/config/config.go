package config

import "time"

// Config holds runtime settings shared by cmd/server and cmd/cli.
type Config struct {
	HTTPAddr     string
	DatabasePath string

	// SecretKey signs admin JWTs (HS256). The default is for development only.
	SecretKey     string
	TokenValidity time.Duration

	LogLevel   string
	LogBackend string
	LogFormat  string
	LogFile    string

	// RemoteTimeout bounds each remote data API call; zero means no timeout.
	RemoteTimeout       time.Duration
	OnlineCheckInterval time.Duration

	GeminiModel    string
	GeminiEndpoint string

	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.DatabasePath = "portfolio.db"
	c.SecretKey = "secretKey"
	c.TokenValidity = 12 * time.Hour
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.LogFormat = "json"
	c.LogFile = ""
	c.RemoteTimeout = 0
	c.OnlineCheckInterval = 3 * time.Second
	c.GeminiModel = "gemini-2.5-flash"
	c.GeminiEndpoint = "https://generativelanguage.googleapis.com/"
	c.S3Region = "us-east-1"
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// UploadsEnabled reports whether image upload presigning is configured.
func (c *Config) UploadsEnabled() bool {
	return c.S3Bucket != ""
}
