// Package lock provee la exclusión mutua del barrido entre instancias usando Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/MenuQR-api/internal/application/subscription"
)

var _ subscription.Locker = (*RedsyncLocker)(nil)

// SweepLockKey clave del mutex del barrido de suscripciones.
const SweepLockKey = "menuqr:lock:subscription-sweep"

// RedsyncLocker intenta una sola vez; si otra instancia lo tiene devuelve subscription.ErrLockHeld.
type RedsyncLocker struct {
	rs     *redsync.Redsync
	key    string
	expiry time.Duration
	log    zerolog.Logger
}

func NewRedsyncLocker(rdb *redis.Client, key string, expiry time.Duration, log zerolog.Logger) *RedsyncLocker {
	return &RedsyncLocker{
		rs:     redsync.New(goredis.NewPool(rdb)),
		key:    key,
		expiry: expiry,
		log:    log,
	}
}

func (l *RedsyncLocker) Lock(ctx context.Context) (func(), error) {
	mutex := l.rs.NewMutex(l.key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		if isTaken(err) {
			return nil, subscription.ErrLockHeld
		}
		return nil, fmt.Errorf("lock: %w", err)
	}
	return func() {
		// ctx puede estar cancelado al terminar el barrido.
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			l.log.Warn().Err(err).Str("key", l.key).Msg("sweep lock release failed")
		}
	}, nil
}

// isTaken distingue "otra instancia lo tiene" de un fallo de Redis.
func isTaken(err error) bool {
	var taken *redsync.ErrTaken
	var nodeTaken *redsync.ErrNodeTaken
	return errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) || errors.As(err, &nodeTaken)
}
