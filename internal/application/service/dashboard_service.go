package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ardentsoft/stroypos/internal/domain/entity"
	"github.com/ardentsoft/stroypos/internal/domain/gateway"
)

// statsTTL bounds how stale the dashboard block may get between backend
// round-trips. The kassa header re-reads it on every paint.
const statsTTL = 5 * time.Second

// DashboardService proxies the backend's aggregate stats with a short-lived
// cache so rapid UI polling does not hammer the backend.
type DashboardService struct {
	stats  gateway.StatsGateway
	logger *zap.Logger

	mu        sync.Mutex
	cached    *entity.DashboardStats
	fetchedAt time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(stats gateway.StatsGateway, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		stats:  stats,
		logger: logger,
	}
}

// GetStats returns dashboard aggregates, serving a cached copy while it is
// fresh. When the backend fails and a stale copy exists, the stale copy is
// served rather than blanking the header.
func (s *DashboardService) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < statsTTL {
		return s.cached, nil
	}

	stats, err := s.stats.Stats(ctx)
	if err != nil {
		if s.cached != nil {
			s.logger.Warn("stats refresh failed, serving stale copy", zap.Error(err))
			return s.cached, nil
		}
		return nil, err
	}

	s.cached = stats
	s.fetchedAt = time.Now()
	return stats, nil
}
