package module

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"babyfood/internal/platform/logger"
)

// cronLogger routes cron's own logging through zerolog
type cronLogger struct{ l *logger.Logger }

var _ cron.Logger = cronLogger{}

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(fields(kv)).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(fields(kv)).Msg("cron: " + msg)
}

func fields(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
