package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name        string
		args        []string
		start       *Config
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db.sqlite", "-s", "secret", "-t", "5",
				"-l", "debug", "-i", "10", "-r", "7", "-m", "gemini-pro", "-b", "bucket", "-g", "us-west-1",
			},
			start: base(),
			expected: func() *Config {
				c := base()
				c.HTTPAddr = "127.0.0.1:9090"
				c.DatabasePath = "db.sqlite"
				c.SecretKey = "secret"
				c.TokenValidity = 5 * time.Minute
				c.LogLevel = "debug"
				c.OnlineCheckInterval = 10 * time.Second
				c.RemoteTimeout = 7 * time.Second
				c.GeminiModel = "gemini-pro"
				c.S3Bucket = "bucket"
				c.S3Region = "us-west-1"
				return c
			},
		},
		{
			name:  "foreign flags ignored, sub-minute durations kept",
			args:  []string{"cmd", "-c", "cfg.json", "-env", "x.env"},
			start: &Config{TokenValidity: 90 * time.Second},
			expected: func() *Config {
				return &Config{TokenValidity: 90 * time.Second}
			},
		},
		{
			name:        "bad int panics",
			args:        []string{"cmd", "-t", "soon"},
			start:       base(),
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(tt.start) })
				return
			}
			require.NotPanics(t, func() { parseFlags(tt.start) })
			assert.Empty(t, cmp.Diff(tt.expected(), tt.start))
		})
	}
}
