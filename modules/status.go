package modules

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// PollInterval is the status poll cadence.
const PollInterval = 2 * time.Second

// Synchronizer keeps the panel's snapshot eventually consistent with the
// bot. Polls are independent and never cancelled; each carries a sequence
// number taken at issue time so a slow response that resolves after a newer
// one is discarded instead of clobbering it.
//
// Poll failures are expected to be transient and go to the diagnostic log
// only, never to the operator-visible event log.
type Synchronizer struct {
	// Interval may be overridden before Start.
	Interval time.Duration

	panel  *Panel
	client *BotClient
	logger *logrus.Logger

	seq      uint64
	done     chan struct{}
	stopOnce sync.Once
}

func NewSynchronizer(panel *Panel, client *BotClient, logger *logrus.Logger) *Synchronizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Synchronizer{
		Interval: PollInterval,
		panel:    panel,
		client:   client,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. Stop cancels the ticker; no tick fires
// afterwards, though an already-issued request may still resolve and be
// dropped by the panel.
func (s *Synchronizer) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.pollOnce()
			}
		}
	}()
}

func (s *Synchronizer) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Refresh requests one out-of-band poll through the same code path as a
// scheduled tick, used right after a lifecycle command resolves.
func (s *Synchronizer) Refresh() {
	go s.pollOnce()
}

func (s *Synchronizer) pollOnce() {
	seq := atomic.AddUint64(&s.seq, 1)

	snapshot, err := s.client.Status()
	if err != nil {
		s.logger.WithError(err).WithField("seq", seq).Debug("status poll failed")
		return
	}

	if !s.panel.ApplyStatus(snapshot, seq) {
		s.logger.WithField("seq", seq).Debug("dropped stale status snapshot")
	}
}
