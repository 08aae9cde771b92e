package modules

import (
	"time"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

// EventLogCapacity bounds the operator-visible log; appending past it
// evicts the oldest entries.
const EventLogCapacity = 100

const logTimeFormat = "15:04:05"

// EventLog is an append-only bounded ring of operator messages. It is not
// synchronized; the owning Panel serializes access.
type EventLog struct {
	entries []models.LogEntry
}

func NewEventLog() *EventLog {
	return &EventLog{entries: make([]models.LogEntry, 0, EventLogCapacity)}
}

// Append stamps the entry with the current wall-clock time and inserts it
// at the end, dropping from the front past capacity.
func (l *EventLog) Append(message string, severity models.Severity) models.LogEntry {
	entry := models.LogEntry{
		Timestamp: time.Now().Format(logTimeFormat),
		Message:   message,
		Severity:  severity,
	}
	l.entries = append(l.entries, entry)
	if excess := len(l.entries) - EventLogCapacity; excess > 0 {
		l.entries = append(l.entries[:0], l.entries[excess:]...)
	}
	return entry
}

// Entries returns a copy in insertion order.
func (l *EventLog) Entries() []models.LogEntry {
	out := make([]models.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *EventLog) Len() int {
	return len(l.entries)
}
