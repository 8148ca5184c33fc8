package main

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aabizri/gemoturtle"
	"github.com/aabizri/gemoturtle/internal/config"
	"github.com/aabizri/gemoturtle/internal/logging"
	"github.com/aabizri/gemoturtle/scale"
)

// session holds what one command invocation derives from its flags
type session struct {
	runID    string
	settings *config.Config
	logger   *bolt.Logger
	lsystem  *gemoturtle.LSystem
}

func (a *App) newSession(opts *grammarOptions) (*session, error) {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		settings.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		settings.Log.Format = opts.logFormat
	}

	s := &session{
		runID:    uuid.NewString(),
		settings: settings,
		logger: logging.New(logging.Config{
			Level:  settings.Log.Level,
			Format: settings.Log.Format,
			Output: a.stderr,
		}),
	}

	rules := gemoturtle.NewRuleSet()
	for _, arg := range opts.rules {
		rule, err := gemoturtle.ParseRule(arg)
		if err != nil {
			return nil, err
		}
		if !rules.Register(rule.Trigger, rule.Replacement) {
			s.event(s.logger.Warn()).Msg("ignoring duplicate rule for " + string(rule.Trigger) + ", the first one is kept")
		}
	}

	s.lsystem = gemoturtle.New(gemoturtle.ParseSequence(opts.axiom), rules)
	s.lsystem.Diagnostics = logging.NewReporter(s.logger, logging.RunID(s.runID))
	return s, nil
}

func loadSettings(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

// event tags e with the run id
func (s *session) event(e *bolt.Event) *logging.LogEvent {
	return logging.NewEvent(e).Add(logging.RunID(s.runID))
}

func (s *session) limit() gemoturtle.Limit {
	return gemoturtle.Limit{
		MaxGeneration: s.settings.Limit.Generations,
		MaxLength:     s.settings.Limit.Length,
	}
}

// parseVars reads name=value pairs for expressions
func parseVars(pairs []string) (scale.Vars, error) {
	vars := make(scale.Vars, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.Errorf("variable %q: want name=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %q", pair)
		}
		vars[strings.TrimSpace(name)] = f
	}
	return vars, nil
}
