package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// RunResult conteos de una ejecución completa del barrido.
type RunResult struct {
	Expired int
	Renewed int
	Skipped bool // otra instancia tenía el lock
}

// Runner ejecuta ambas pasadas bajo un lock distribuido opcional. Lo usa el binario cmd/sweeper.
type Runner struct {
	sweeper *Sweeper
	locker  Locker
	timeout time.Duration
	log     zerolog.Logger
}

// NewRunner construye el runner; locker puede ser nil (una sola instancia).
func NewRunner(sweeper *Sweeper, locker Locker, timeout time.Duration, log zerolog.Logger) *Runner {
	return &Runner{sweeper: sweeper, locker: locker, timeout: timeout, log: log}
}

// RunOnce vence primero y después renueva. Un error en la pasada de vencimiento no impide la de renovación.
func (r *Runner) RunOnce(ctx context.Context) (RunResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx)
		if errors.Is(err, ErrLockHeld) {
			r.log.Info().Msg("sweep skipped: lock held by another instance")
			return RunResult{Skipped: true}, nil
		}
		if err != nil {
			return RunResult{}, err
		}
		defer unlock()
	}

	var res RunResult
	expired, expErr := r.sweeper.ExpireSweep(ctx)
	if expErr != nil {
		r.log.Error().Err(expErr).Msg("expire sweep failed")
	}
	res.Expired = expired

	renewed, renErr := r.sweeper.RenewSweep(ctx)
	if renErr != nil {
		r.log.Error().Err(renErr).Msg("renew sweep failed")
	}
	res.Renewed = renewed

	return res, errors.Join(expErr, renErr)
}
