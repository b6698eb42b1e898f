package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/enum"
)

func TestRefreshSwapsSnapshot(t *testing.T) {
	saleID := uuid.New()
	sales := &fakeSalesGateway{
		pendingFn: func(_ context.Context, limit int) ([]entity.Sale, error) {
			assert.Equal(t, 100, limit)
			return []entity.Sale{{ID: saleID, Status: enum.SaleStatusPending}}, nil
		},
	}
	poller := NewPendingPoller(sales, &config.PollConfig{Interval: time.Hour, PendingLimit: 100}, zaptest.NewLogger(t))

	require.NoError(t, poller.Refresh(context.Background()))

	snap := poller.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.False(t, snap.FetchedAt.IsZero())
	require.NotNil(t, snap.Find(saleID))
	assert.Nil(t, snap.Find(uuid.New()))
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	saleID := uuid.New()
	var fail atomic.Bool
	sales := &fakeSalesGateway{
		pendingFn: func(context.Context, int) ([]entity.Sale, error) {
			if fail.Load() {
				return nil, errors.New("backend down")
			}
			return []entity.Sale{{ID: saleID}}, nil
		},
	}
	poller := NewPendingPoller(sales, &config.PollConfig{Interval: time.Hour, PendingLimit: 50}, zaptest.NewLogger(t))

	require.NoError(t, poller.Refresh(context.Background()))
	before := poller.Snapshot()

	fail.Store(true)
	assert.Error(t, poller.Refresh(context.Background()))

	after := poller.Snapshot()
	assert.Equal(t, before.FetchedAt, after.FetchedAt)
	require.Len(t, after.Orders, 1)
	assert.Equal(t, saleID, after.Orders[0].ID)
}

func TestRunPollsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	sales := &fakeSalesGateway{
		pendingFn: func(context.Context, int) ([]entity.Sale, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	poller := NewPendingPoller(sales, &config.PollConfig{Interval: 5 * time.Millisecond, PendingLimit: 10}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancel")
	}
}
