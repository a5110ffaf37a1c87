// Package config reads the application configuration from the environment.
package config

import (
	"github.com/myrjola/detectivequest/internal/envstruct"
	"github.com/myrjola/detectivequest/internal/errors"
)

type Config struct {
	// LogLevel is debug, info, warn or error. Logs go to stderr.
	LogLevel string `env:"DETECTIVEQUEST_LOG_LEVEL" envDefault:"warn"`
	// Lang selects the message catalog: pt_BR or en.
	Lang string `env:"DETECTIVEQUEST_LANG" envDefault:"pt_BR"`
	// Color is auto, always or never.
	Color string `env:"DETECTIVEQUEST_COLOR" envDefault:"auto"`
	// CaseFile is a YAML case definition. Empty plays the built-in mansion.
	CaseFile string `env:"DETECTIVEQUEST_CASE_FILE" envDefault:""`
	// JournalURL is the SQLite database of the verdict journal. Empty disables the journal.
	JournalURL string `env:"DETECTIVEQUEST_JOURNAL_URL" envDefault:""`
	// PprofAddr serves the runtime profiles while playing. Empty disables the server.
	PprofAddr string `env:"DETECTIVEQUEST_PPROF_ADDR" envDefault:""`
	// TracesEnabled exports spans to OTLPEndpoint.
	TracesEnabled bool   `env:"OTEL_TRACES_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load populates a Config using lookupEnv, which has the signature of [os.LookupEnv].
func Load(lookupEnv func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate config")
	}
	return &cfg, nil
}
