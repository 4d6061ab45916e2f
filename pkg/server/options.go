package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options configures a server. Zero values are replaced by the defaults
// LoadOptions would apply.
type Options struct {
	TurnTimeout   time.Duration `env:"BGRULES_TURN_TIMEOUT"   envDefault:"45s"`
	DoubleTimeout time.Duration `env:"BGRULES_DOUBLE_TIMEOUT" envDefault:"12s"`
	Language      string        `env:"BGRULES_LANGUAGE"       envDefault:"en"`
	Verbose       bool          `env:"BGRULES_VERBOSE"`

	// MaxAutomatedActions bounds the commands automated seats may issue in
	// response to a single submitted command.
	MaxAutomatedActions int `env:"BGRULES_MAX_AUTOMATED_ACTIONS" envDefault:"1024"`
}

const (
	defaultTurnTimeout         = 45 * time.Second
	defaultDoubleTimeout       = 12 * time.Second
	defaultMaxAutomatedActions = 1024
)

// LoadOptions reads options from the environment.
func LoadOptions() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

func (o Options) withDefaults() Options {
	if o.TurnTimeout <= 0 {
		o.TurnTimeout = defaultTurnTimeout
	}
	if o.DoubleTimeout <= 0 {
		o.DoubleTimeout = defaultDoubleTimeout
	}
	if o.Language == "" {
		o.Language = "en"
	}
	if o.MaxAutomatedActions <= 0 {
		o.MaxAutomatedActions = defaultMaxAutomatedActions
	}
	return o
}
