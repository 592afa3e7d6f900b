package config

import (
	"flag"
	"fmt"
	"time"
)

// Options are the runtime settings shared by the game and the simulator.
// Environment variables set the defaults and command-line flags win.
type Options struct {
	Spec      string        `env:"ECHOFORM_SPEC" envDefault:"character.yaml"`
	Combat    string        `env:"ECHOFORM_COMBAT"`
	LogLevel  string        `env:"ECHOFORM_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"ECHOFORM_LOG_FORMAT" envDefault:"text"`
	Scenario  string        `env:"ECHOFORM_SCENARIO" envDefault:"tour"`
	TPS       int           `env:"ECHOFORM_TPS" envDefault:"60"`
	Step      time.Duration `env:"ECHOFORM_STEP" envDefault:"100ms"`
	MaxTicks  int           `env:"ECHOFORM_MAX_TICKS" envDefault:"600"`
	Watch     bool          `env:"ECHOFORM_WATCH" envDefault:"true"`
}

// Load reads Options from the environment and then from args.
func Load(name string, args []string) (Options, error) {
	var o Options
	if err := ParseEnv(&o); err != nil {
		return o, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.Spec, "spec", o.Spec, "character prefab to load")
	fs.StringVar(&o.Combat, "combat", o.Combat, "override the combat mode (combo or charge)")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "debug, info, warn or error")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "text or json")
	fs.StringVar(&o.Scenario, "scenario", o.Scenario, "scenario script to run")
	fs.IntVar(&o.TPS, "tps", o.TPS, "game ticks per second")
	fs.DurationVar(&o.Step, "step", o.Step, "simulated tick length")
	fs.IntVar(&o.MaxTicks, "max-ticks", o.MaxTicks, "stop the simulation after this many ticks")
	fs.BoolVar(&o.Watch, "watch", o.Watch, "reload prefabs when they change on disk")
	if err := fs.Parse(args); err != nil {
		return o, fmt.Errorf("parse flags: %w", err)
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

func (o Options) Validate() error {
	if o.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", o.TPS)
	}
	if o.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", o.Step)
	}
	switch o.Combat {
	case "", "combo", "charge":
	default:
		return fmt.Errorf("unknown combat mode %q", o.Combat)
	}
	return nil
}
