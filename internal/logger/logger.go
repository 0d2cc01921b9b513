package logger

import (
	"go.uber.org/zap"
)

// Init builds the global zap logger for the given environment
// ("production" gets the JSON production config, anything else development).
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}
