package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Environment represents the deployment environment.
type Environment string

const (
	EnvLocal      Environment = "local"
	EnvStaging    Environment = "staging"
	EnvProduction Environment = "production"
)

func (e Environment) String() string { return string(e) }

func (e Environment) IsProduction() bool { return e == EnvProduction }

func (e Environment) IsDevelopment() bool { return e == EnvLocal || e == EnvStaging }

// GetEnvironment returns the current environment from APP_ENV, defaulting
// to "local".
func GetEnvironment() Environment {
	env := os.Getenv("APP_ENV")
	switch strings.ToLower(env) {
	case "production", "prod":
		return EnvProduction
	case "staging", "stg":
		return EnvStaging
	case "local", "development", "dev", "":
		return EnvLocal
	default:
		log.Warn().Str("app_env", env).Msg("unknown APP_ENV, defaulting to local")
		return EnvLocal
	}
}

// LoadEnvFile loads the environment-specific .env file, falling back to a
// bare .env, then to process environment variables alone.
//
//  1. .env.[environment]
//  2. .env
func LoadEnvFile() Environment {
	env := GetEnvironment()

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err == nil {
		log.Info().Str("file", envFile).Msg("loaded configuration file")
		return env
	}

	if err := godotenv.Load(); err == nil {
		log.Info().Str("app_env", string(env)).Msg("loaded configuration from .env")
		return env
	}

	log.Info().Str("app_env", string(env)).Msg("no .env file found, using process environment")
	return env
}
