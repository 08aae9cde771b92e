package modules

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

// Panel is the single shared state container behind every view: the
// editable configuration, the bounded event log, the last applied status
// snapshot and the command in-flight flag. All mutation goes through one
// mutex; snapshot replacement is wholesale, never field-by-field.
//
// After Close, every mutation and notification is a silent no-op so that
// late network resolutions cannot touch released state.
type Panel struct {
	mu        sync.Mutex
	config    *ConfigModel
	log       *EventLog
	status    models.StatusSnapshot
	statusSeq uint64
	inFlight  bool
	closed    bool
	listeners []func(models.PanelEvent)

	logger *logrus.Logger
}

func NewPanel(logger *logrus.Logger) *Panel {
	if logger == nil {
		logger = logrus.New()
	}
	return &Panel{
		config: NewConfigModel(),
		log:    NewEventLog(),
		logger: logger,
	}
}

// Subscribe registers a listener for panel events. Listeners are invoked
// outside the panel lock and may read panel state freely.
func (p *Panel) Subscribe(fn func(models.PanelEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.listeners = append(p.listeners, fn)
}

func (p *Panel) notify(ev models.PanelEvent) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	listeners := make([]func(models.PanelEvent), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// UpdateConfig coerces and stores one field of operator input.
func (p *Panel) UpdateConfig(field, raw string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.config.Update(field, raw)
	p.mu.Unlock()

	p.notify(models.PanelEvent{Kind: models.EventConfigChanged, Field: field})
}

// SeedConfig replaces the whole configuration, used once at startup from
// flags or the defaults file.
func (p *Panel) SeedConfig(cfg models.Configuration) {
	p.mu.Lock()
	p.config.Replace(cfg)
	p.mu.Unlock()
}

func (p *Panel) Config() models.Configuration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config.Snapshot()
}

func (p *Panel) IsSubmittable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config.IsSubmittable()
}

// AppendLog adds an operator-visible entry and notifies views.
func (p *Panel) AppendLog(message string, severity models.Severity) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	entry := p.log.Append(message, severity)
	p.mu.Unlock()

	p.notify(models.PanelEvent{Kind: models.EventLogAppended, Entry: &entry})
}

func (p *Panel) Logs() []models.LogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.log.Entries()
}

// ApplyStatus replaces the snapshot if seq is newer than the last applied
// one and the panel is still live. Returns whether the snapshot was taken;
// a false return means the response was stale or arrived after teardown.
func (p *Panel) ApplyStatus(snapshot models.StatusSnapshot, seq uint64) bool {
	p.mu.Lock()
	if p.closed || seq <= p.statusSeq {
		p.mu.Unlock()
		return false
	}
	p.status = snapshot
	p.statusSeq = seq
	p.mu.Unlock()

	p.notify(models.PanelEvent{Kind: models.EventStatusUpdated, Status: &snapshot})
	return true
}

func (p *Panel) Status() models.StatusSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// BeginAction claims the in-flight guard; false means another command
// holds it or the panel is closed.
func (p *Panel) BeginAction() bool {
	p.mu.Lock()
	if p.closed || p.inFlight {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	p.mu.Unlock()

	p.notify(models.PanelEvent{Kind: models.EventActionChanged, InFlight: true})
	return true
}

// EndAction releases the guard. Safe on every exit path.
func (p *Panel) EndAction() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()

	p.notify(models.PanelEvent{Kind: models.EventActionChanged, InFlight: false})
}

func (p *Panel) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Close tears the panel down; subsequent mutations are dropped.
func (p *Panel) Close() {
	p.mu.Lock()
	p.closed = true
	p.listeners = nil
	p.mu.Unlock()

	p.logger.Debug("panel closed, further state updates are dropped")
}

func (p *Panel) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
