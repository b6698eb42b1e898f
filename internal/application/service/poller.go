package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/config"
	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
)

// PendingSnapshot is one poll cycle's view of the backend's pending sales.
// FetchedAt lets the UI flag a stale view when the backend has been
// unreachable for a while.
type PendingSnapshot struct {
	Orders    []entity.Sale `json:"orders"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Find returns the pending sale with the given id, or nil.
func (s *PendingSnapshot) Find(saleID uuid.UUID) *entity.Sale {
	for i := range s.Orders {
		if s.Orders[i].ID == saleID {
			return &s.Orders[i]
		}
	}
	return nil
}

// PendingPoller keeps an in-memory snapshot of the backend's pending sales,
// refreshed on a fixed interval. Read requests are served from the snapshot
// so the kassa screen stays responsive while the backend is slow or down; a
// failed refresh keeps the previous snapshot instead of blanking the screen.
type PendingPoller struct {
	sales    gateway.SalesGateway
	interval time.Duration
	limit    int
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot PendingSnapshot
}

// NewPendingPoller creates a poller from configuration. It does not start
// polling until Run is called.
func NewPendingPoller(sales gateway.SalesGateway, cfg *config.PollConfig, logger *zap.Logger) *PendingPoller {
	return &PendingPoller{
		sales:    sales,
		interval: cfg.Interval,
		limit:    cfg.PendingLimit,
		logger:   logger,
	}
}

// Run refreshes immediately, then on every tick until the context is
// cancelled. Intended to run in its own goroutine for the process lifetime.
func (p *PendingPoller) Run(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("initial pending refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pending poller stopped")
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.logger.Warn("pending refresh failed", zap.Error(err))
			}
		}
	}
}

// Refresh fetches pending sales from the backend and swaps the snapshot.
// On error the previous snapshot is left in place.
func (p *PendingPoller) Refresh(ctx context.Context) error {
	orders, err := p.sales.PendingSales(ctx, p.limit)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.snapshot = PendingSnapshot{
		Orders:    orders,
		FetchedAt: time.Now(),
	}
	p.mu.Unlock()

	p.logger.Debug("pending snapshot refreshed", zap.Int("orders", len(orders)))
	return nil
}

// Snapshot returns the current view. The slice is shared; callers must not
// mutate it.
func (p *PendingPoller) Snapshot() PendingSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
