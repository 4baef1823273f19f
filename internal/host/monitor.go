package host

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"typeset-cli/internal/model"
)

// DefaultPollInterval is how often the monitor samples the editor selection.
const DefaultPollInterval = 200 * time.Millisecond

// Monitor polls the host for new marquee selections while multi-bubble mode
// is armed, and hands each fresh one to onCapture. Selections are identified
// by their bounds hash so re-polling the same marquee emits once; selections
// under MinSelectionArea never emit.
//
// Start/Stop are idempotent. Each Start bumps an internal generation so a
// poll that was in flight when Stop was called cannot deliver a stale capture
// into the next run.
type Monitor struct {
	svc      Service
	interval time.Duration
	log      *zap.Logger
	onCapture func(model.Selection)

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
	seen       map[string]bool
}

func NewMonitor(svc Service, interval time.Duration, log *zap.Logger, onCapture func(model.Selection)) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		svc:       svc,
		interval:  interval,
		log:       log,
		onCapture: onCapture,
		seen:      map[string]bool{},
	}
}

func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	m.generation++
	gen := m.generation
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.loop(ctx, gen)
	m.log.Debug("selection monitor started")
}

func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.generation++
	m.log.Debug("selection monitor stopped")
}

// Running reports whether the poll loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Reset forgets every captured bounds hash, so cleared selections can be
// re-captured in place.
func (m *Monitor) Reset() {
	m.mu.Lock()
	m.seen = map[string]bool{}
	m.mu.Unlock()
}

// Forget drops one hash, used when a single stored selection is removed.
func (m *Monitor) Forget(hash string) {
	m.mu.Lock()
	delete(m.seen, hash)
	m.mu.Unlock()
}

func (m *Monitor) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sel, err := m.svc.CurrentSelection(ctx)
		if err != nil {
			continue
		}
		if sel.Area() < MinSelectionArea {
			continue
		}
		hash := sel.BoundsHash()

		m.mu.Lock()
		stale := gen != m.generation
		dup := m.seen[hash]
		if !stale && !dup {
			m.seen[hash] = true
		}
		m.mu.Unlock()
		if stale {
			return
		}
		if dup {
			continue
		}
		m.log.Debug("selection captured", zap.String("bounds", hash))
		m.onCapture(sel)
	}
}
