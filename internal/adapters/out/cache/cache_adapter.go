package cache

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/clinic-calendar/internal/config"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

type dayAppointmentsCache struct {
	cache *lru.Cache[civil.Date, []domain.PatientAppointment]
}

type CacheAdapter struct {
	dayCache *dayAppointmentsCache
	mu       sync.RWMutex
	logger   out.LoggerPort
}

var _ out.CachePort = (*CacheAdapter)(nil)

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruDayCache, err := lru.New[civil.Date, []domain.PatientAppointment](cfg.Cache.DaysSize)
	if err != nil {
		logger.Error("cache.days.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DaysSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		dayCache: &dayAppointmentsCache{cache: lruDayCache},
		logger:   logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetDayAppointments(ctx context.Context, date civil.Date) ([]domain.PatientAppointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.dayCache.cache.Get(date)
	if !exists {
		c.logger.Debug("cache.days.get.miss", out.LogFields{
			"date": date.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.days.get.hit", out.LogFields{
		"date":              date.String(),
		"appointmentsCount": len(entry),
	})
	return cloneAppointments(entry), true
}

func (c *CacheAdapter) StoreDayAppointments(ctx context.Context, date civil.Date, appointments []domain.PatientAppointment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.days.store", out.LogFields{
		"date":              date.String(),
		"appointmentsCount": len(appointments),
	})

	c.dayCache.cache.Add(date, cloneAppointments(appointments))
}

func (c *CacheAdapter) InvalidateDayAppointments(ctx context.Context, date civil.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dayCache.cache.Remove(date)
}

func (c *CacheAdapter) InvalidateAllDayAppointments(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dayCache.cache.Purge()
}

// Календарь и вызывающий код не должны видеть один и тот же массив
func cloneAppointments(appointments []domain.PatientAppointment) []domain.PatientAppointment {
	cloned := make([]domain.PatientAppointment, len(appointments))
	copy(cloned, appointments)
	return cloned
}
