package main

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// cronLogger adapta zerolog a la interfaz de logging de cron.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// newScheduler crea el cron con segundos. Un barrido que sigue corriendo al llegar el
// siguiente tick hace que ese tick se omita, también sin lock distribuido.
func newScheduler(log zerolog.Logger) *cron.Cron {
	cl := cronLogger{log: log}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}
