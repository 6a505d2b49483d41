// Package obs carries the module's ambient observability concerns:
// structured logging and the stage-error taxonomy.
package obs

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Call once at startup.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if environment == "production" || environment == "staging" {
		// Structured JSON in deployed environments, human-readable locally.
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ForRequest returns a logger pre-populated with the request's correlation id.
func ForRequest(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}
