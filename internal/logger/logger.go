// Package logger builds the zap logger shared by every component.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured log field keys used across packages
const (
	FieldRequestID   = "request_id"
	FieldCommand     = "command"
	FieldUserID      = "user_id"
	FieldGuildID     = "guild_id"
	FieldInteraction = "interaction_id"
)

// New returns a console or JSON logger at info or debug level
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			NameKey: "logger",

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when
// nil is passed.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// InteractionFields returns the standard fields describing one interaction.
// Empty values are skipped.
func InteractionFields(interactionID, command, userID, guildID string) []zap.Field {
	pairs := [][2]string{
		{FieldInteraction, interactionID},
		{FieldCommand, command},
		{FieldUserID, userID},
		{FieldGuildID, guildID},
	}
	fields := make([]zap.Field, 0, len(pairs))
	for _, p := range pairs {
		if v := strings.TrimSpace(p[1]); v != "" {
			fields = append(fields, zap.String(p[0], v))
		}
	}
	return fields
}
