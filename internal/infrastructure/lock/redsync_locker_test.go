package lock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/assert"
)

func TestIsTaken(t *testing.T) {
	assert.True(t, isTaken(redsync.ErrFailed))
	assert.True(t, isTaken(&redsync.ErrTaken{Nodes: []int{0}}))
	assert.True(t, isTaken(fmt.Errorf("acquire: %w", &redsync.ErrTaken{Nodes: []int{0}})))
	assert.True(t, isTaken(&redsync.ErrNodeTaken{Node: 0}))

	assert.False(t, isTaken(errors.New("lock already taken")), "solo se confía en el tipo, no en el texto")
	assert.False(t, isTaken(redsync.RedisError{Node: 0, Err: errors.New("connection refused")}))
	assert.False(t, isTaken(context.DeadlineExceeded))
}
