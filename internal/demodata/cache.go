// Package demodata owns the generated dataset that backs every page of
// the dashboard. The dataset is produced lazily on first access, cached
// for the life of the process, and never mutated afterwards.
package demodata

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

// Dataset is the full demo frame shared read-only by all views. Callers
// must not modify the slices returned from Load.
type Dataset struct {
	Machines    []telemetry.MachineSample    `json:"machines"`
	Production  []telemetry.ProductionSample `json:"production"`
	GeneratedAt time.Time                    `json:"generatedAt"`
}

// Observer receives cache activity notifications, typically wired to
// Prometheus counters.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// Params controls generation. A zero Seed draws a fresh seed per
// generation; any other value makes the dataset reproducible.
type Params struct {
	Machines         []string
	MachinePoints    int
	ProductionPoints int
	Interval         time.Duration
	Seed             int64
}

// DefaultParams is the stock dataset shape: four machines with 100
// hourly points each and a 24 hour production window.
func DefaultParams() Params {
	return Params{
		Machines:         []string{"machine-01", "machine-02", "machine-03", "machine-04"},
		MachinePoints:    100,
		ProductionPoints: 24,
		Interval:         time.Hour,
	}
}

// Cache memoizes the combined dataset behind a single load call. The
// singleflight group guarantees that concurrent first callers converge
// on one generation; the group key is constant because there is only
// ever one dataset per process.
type Cache struct {
	params Params
	obs    Observer
	now    func() time.Time

	mu    sync.RWMutex
	cur   *Dataset
	group singleflight.Group
}

const datasetKey = "demo-dataset"

// NewCache validates params eagerly so a misconfigured cache fails at
// construction rather than on the first page load.
func NewCache(params Params, obs Observer) (*Cache, error) {
	if len(params.Machines) == 0 {
		return nil, fmt.Errorf("no machines configured: %w", telemetry.ErrInvalidArgument)
	}
	if params.MachinePoints <= 0 || params.ProductionPoints <= 0 {
		return nil, fmt.Errorf("point counts must be positive: %w", telemetry.ErrInvalidArgument)
	}
	if params.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive: %w", telemetry.ErrInvalidArgument)
	}
	return &Cache{params: params, obs: obs, now: time.Now}, nil
}

// Load returns the cached dataset, generating it on first call. The
// returned pointer is shared; treat it as read-only.
func (c *Cache) Load() (*Dataset, error) {
	c.mu.RLock()
	cur := c.cur
	c.mu.RUnlock()
	if cur != nil {
		if c.obs != nil {
			c.obs.CacheHit()
		}
		return cur, nil
	}

	if c.obs != nil {
		c.obs.CacheMiss()
	}
	v, err, _ := c.group.Do(datasetKey, func() (any, error) {
		// Re-check under the lock: a generation may have completed
		// between the read above and joining the flight.
		c.mu.RLock()
		cur := c.cur
		c.mu.RUnlock()
		if cur != nil {
			return cur, nil
		}

		ds, err := c.generate()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cur = ds
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Invalidate clears the stored dataset so the next Load regenerates.
// Intended for tests and the explicit reset endpoint only.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cur = nil
	c.mu.Unlock()
}

func (c *Cache) generate() (*Dataset, error) {
	seed := c.params.Seed
	if seed == 0 {
		seed = c.now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	now := c.now()

	machines, err := telemetry.GenerateMachineSeries(rng, c.params.Machines, c.params.MachinePoints, c.params.Interval, now)
	if err != nil {
		return nil, fmt.Errorf("machine series: %w", err)
	}
	production, err := telemetry.GenerateProductionSeries(rng, c.params.ProductionPoints, c.params.Interval, now)
	if err != nil {
		return nil, fmt.Errorf("production series: %w", err)
	}
	return &Dataset{Machines: machines, Production: production, GeneratedAt: now}, nil
}
