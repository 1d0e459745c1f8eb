package config

import "github.com/csssyntax/csssyntax/internal/logger"

const DefaultMatchStepLimit = 100000

type Options struct {
	// Per-message overrides from "--log-override:id=level"
	LogOverrides map[logger.MsgID]logger.LogLevel

	// The maximum number of unit match attempts for one value. Zero means
	// "DefaultMatchStepLimit".
	MatchStepLimit int

	LogLevel logger.LogLevel

	// Don't check that each initial value matches its own property grammar
	// when loading the property tables
	SkipInitialValueCheck bool
}

func DefaultOptions() Options {
	return Options{
		MatchStepLimit: DefaultMatchStepLimit,
		LogLevel:       logger.LevelWarning,
	}
}
