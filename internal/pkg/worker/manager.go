package worker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/env"
	metrics "github.com/VendoraHQ/Vendora/internal/pkg/metrics/counter"
	"github.com/VendoraHQ/Vendora/internal/pkg/statistics"
)

const (
	counterFlushInterval = 5 * time.Second
	statisticsInterval   = 5 * time.Minute
	defaultSweepMinutes  = 15
)

// Manager runs the periodic maintenance tasks: impression counter flushes,
// statistics cache refreshes and the subscription expiry sweep
type Manager struct {
	counterFlushTicker *time.Ticker
	statsTicker        *time.Ticker
	expiryTicker       *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global worker manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// Start starts the background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so the manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Worker Manager] Starting background tasks")

	// Flush impression counters (Redis -> DB) every few seconds
	m.counterFlushTicker = time.NewTicker(counterFlushInterval)
	m.wg.Add(1)
	go m.counterFlushWorker(m.stopCh)

	// Keep the marketplace statistics cache warm
	m.statsTicker = time.NewTicker(statisticsInterval)
	m.wg.Add(1)
	go m.statisticsWorker(m.stopCh)

	// Sweep overdue subscriptions - configurable interval
	m.expiryTicker = time.NewTicker(expirySweepInterval())
	m.wg.Add(1)
	go m.expiryWorker(m.stopCh)

	log.Info("[Worker Manager] Started successfully")
}

// Stop stops the background tasks and waits for them to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Worker Manager] Stopping background tasks...")

	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}
	if m.statsTicker != nil {
		m.statsTicker.Stop()
	}
	if m.expiryTicker != nil {
		m.expiryTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	log.Info("[Worker Manager] Stopped successfully")
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// counterFlushWorker periodically flushes pending impression counters to the database
func (m *Manager) counterFlushWorker(stopCh chan struct{}) {
	defer m.wg.Done()
	for {
		select {
		case <-stopCh:
			log.Info("[Worker Manager] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := metrics.FlushAll(); err != nil {
				log.Errorf("[Worker Manager] Counter flush error: %v", err)
			}
		}
	}
}

// statisticsWorker keeps the statistics cache fresh; the statistics package
// guards against refreshing more often than its own interval
func (m *Manager) statisticsWorker(stopCh chan struct{}) {
	defer m.wg.Done()
	for {
		select {
		case <-stopCh:
			log.Info("[Worker Manager] Statistics worker stopping")
			return
		case <-m.statsTicker.C:
			statistics.UpdateCacheIfNeeded()
		}
	}
}

// expiryWorker periodically marks overdue subscriptions as expired
func (m *Manager) expiryWorker(stopCh chan struct{}) {
	defer m.wg.Done()
	for {
		select {
		case <-stopCh:
			log.Info("[Worker Manager] Subscription expiry worker stopping")
			return
		case <-m.expiryTicker.C:
			if err := m.sweepExpiredOnce(); err != nil {
				log.Errorf("[Worker Manager] Subscription expiry sweep error: %v", err)
			}
		}
	}
}

func (m *Manager) sweepExpiredOnce() error {
	repo := repository.GetGlobalRepositories().Subscription
	n, err := repo.ExpireOverdue(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Infof("[Worker Manager] Marked %d overdue subscriptions as EXPIRED", n)
	}
	return nil
}

// RunExpirySweepOnce exposes a manual trigger for a single expiry sweep (admin use).
func (m *Manager) RunExpirySweepOnce() error {
	return m.sweepExpiredOnce()
}

// expirySweepInterval reads the sweep interval from the environment
func expirySweepInterval() time.Duration {
	minutes := defaultSweepMinutes
	if v, err := strconv.Atoi(env.GetEnv("SUBSCRIPTION_SWEEP_MINUTES", "")); err == nil && v > 0 {
		minutes = v
	}
	return time.Duration(minutes) * time.Minute
}
