package closer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_RunsInReverseOrder(t *testing.T) {
	c := NewCloser(0)
	var order []string

	c.AddFunc(func() error { order = append(order, "db"); return nil })
	c.AddFunc(func() error { order = append(order, "redis"); return nil })
	c.Add(func(context.Context) error { order = append(order, "http"); return nil })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "db"}, order)
}

func TestClose_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.AddFunc(func() error { return errors.New("pool close failed") })

	err := c.Close(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool close failed")
}

func TestClose_ForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(50 * time.Millisecond)
	forced := make(chan struct{}, 1)

	c.Add(func(ctx context.Context) error {
		if ctx.Err() == nil {
			forced <- struct{}{}
		}
		return nil
	})
	c.Add(func(context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")

	select {
	case <-forced:
	case <-time.After(time.Second):
		t.Fatal("expected remaining func to run in forced pass")
	}
}

func TestClose_DoesNotRerunInterruptedFunc(t *testing.T) {
	c := NewCloser(50 * time.Millisecond)
	var slowCalls, remainingCalls atomic.Int32

	c.Add(func(context.Context) error {
		remainingCalls.Add(1)
		return nil
	})
	c.Add(func(context.Context) error {
		slowCalls.Add(1)
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.Error(t, c.Close(ctx))
	assert.Equal(t, int32(1), slowCalls.Load())
	assert.Equal(t, int32(1), remainingCalls.Load())
}

func TestClose_OnlyOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddFunc(func() error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}
