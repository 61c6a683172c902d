package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/neoportfolio/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address (":3000")
//	-d string   SQLite database path
//	-s string   JWT HMAC secret key
//	-t int      admin token validity, minutes
//	-l string   log level
//	-i int      storage mode check interval, seconds
//	-r int      remote data API timeout, seconds (0 = none)
//	-m string   Gemini model
//	-b string   S3 bucket for image uploads
//	-g string   S3 region
//
// Unknown flags are filtered out first so -c and -env do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-i", "-r", "-m", "-b", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP bind address")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "SQLite database path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "admin token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "storage mode check interval (in seconds)")
	remoteTimeout := fs.Int("r", int(config.RemoteTimeout.Seconds()), "remote data API timeout (in seconds)")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are only touched when given, so sub-minute JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
		case "i":
			config.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "r":
			config.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
		}
	})
}
