package modules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

func TestAppendStampsAndReturnsEntry(t *testing.T) {
	l := NewEventLog()

	entry := l.Append("bot started for pair BTCUSDT", models.SeveritySuccess)

	assert.NotEmpty(t, entry.Timestamp)
	assert.Equal(t, models.SeveritySuccess, entry.Severity)
	assert.Equal(t, 1, l.Len())
}

func TestRingKeepsLastHundredInOrder(t *testing.T) {
	l := NewEventLog()

	for i := 0; i < 150; i++ {
		l.Append(fmt.Sprintf("msg-%d", i), models.SeverityInfo)
	}

	entries := l.Entries()
	assert.Len(t, entries, EventLogCapacity)
	assert.Equal(t, "msg-50", entries[0].Message)
	assert.Equal(t, "msg-149", entries[len(entries)-1].Message)

	for i := 1; i < len(entries); i++ {
		assert.Equal(t, fmt.Sprintf("msg-%d", 50+i), entries[i].Message)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := NewEventLog()
	l.Append("one", models.SeverityInfo)

	entries := l.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "one", l.Entries()[0].Message)
}
