package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/neoportfolio/internal/flagx"
)

// Env holds the deploy-time credentials injected through the environment.
// Each value may also be given with a VITE_ prefix.
type Env struct {
	MongoAPIURL   string
	MongoAPIKey   string
	MongoDatabase string
	MongoCluster  string
	GeminiAPIKey  string
	AdminPassword string
}

// Environment variable names, without the VITE_ alias prefix.
const (
	EnvMongoAPIURL   = "MONGODB_API_URL"
	EnvMongoAPIKey   = "MONGODB_API_KEY"
	EnvMongoDatabase = "MONGODB_DATABASE"
	EnvMongoCluster  = "MONGODB_CLUSTER"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvAdminPassword = "ADMIN_PASSWORD"

	aliasPrefix = "VITE_"
)

// LoadEnv loads dotenv files into the process environment and returns the
// resulting Env. Without -env, .env.local and .env are tried and missing
// files are ignored; variables already set are never overridden. A file
// given with -env must exist, otherwise LoadEnv panics.
func LoadEnv() Env {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		loadOptional(".env.local", ".env")
	}
	return ReadEnv(os.LookupEnv)
}

func loadOptional(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}
}

// ReadEnv builds Env from lookup. For every variable the plain name wins
// over its VITE_ alias; blank values count as unset.
func ReadEnv(lookup func(string) (string, bool)) Env {
	get := func(name string) string {
		for _, key := range []string{name, aliasPrefix + name} {
			if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	return Env{
		MongoAPIURL:   get(EnvMongoAPIURL),
		MongoAPIKey:   get(EnvMongoAPIKey),
		MongoDatabase: get(EnvMongoDatabase),
		MongoCluster:  get(EnvMongoCluster),
		GeminiAPIKey:  get(EnvGeminiAPIKey),
		AdminPassword: get(EnvAdminPassword),
	}
}
