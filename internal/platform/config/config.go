package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// Today overrides the validation reference date (YYYY-MM-DD). Empty means
	// the wall clock; set in tests and replayed imports for determinism.
	Today string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CASEFILE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Server{
		Addr:  addr,
		Today: os.Getenv("CASEFILE_TODAY"),
	}
}

// ReferenceDate resolves the validation "today" from config, falling back to
// the wall clock when unset or malformed.
func (s Server) ReferenceDate() time.Time {
	if s.Today != "" {
		if t, err := time.Parse("2006-01-02", s.Today); err == nil {
			return t
		}
	}
	return time.Now()
}
