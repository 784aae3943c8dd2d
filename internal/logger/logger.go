package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mysticpicks/picks-api/internal/config"
)

// level is shared by every core built by Init so it can be changed at runtime.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Init builds the global logger. Production environments log JSON, all
// others use the human readable development encoder.
func Init(conf *config.APIConfig) error {
	if err := SetLevel(conf.LogLevel); err != nil {
		return err
	}

	var zapConf zap.Config
	if conf.Environment == "production" {
		zapConf = zap.NewProductionConfig()
		zapConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConf = zap.NewDevelopmentConfig()
	}
	zapConf.Level = level

	l, err := zapConf.Build()
	if err != nil {
		return fmt.Errorf("zapConf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l.With(zap.String("env", conf.Environment)))

	return nil
}

// SetLevel changes the level of the global logger. An empty name keeps the
// current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}

	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q -> %w", name, err)
	}
	level.SetLevel(l)

	return nil
}

// Level reports the current level of the global logger.
func Level() zapcore.Level {
	return level.Level()
}
