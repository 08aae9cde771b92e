package models

type PanelEventKind string

const (
	EventLogAppended   PanelEventKind = "log"
	EventStatusUpdated PanelEventKind = "status"
	EventConfigChanged PanelEventKind = "config"
	EventActionChanged PanelEventKind = "action"
)

// PanelEvent fans out panel state changes to attached views (TUI redraw,
// websocket push). Only the fields relevant to Kind are set.
type PanelEvent struct {
	Kind     PanelEventKind  `json:"kind"`
	Entry    *LogEntry       `json:"entry,omitempty"`
	Status   *StatusSnapshot `json:"status,omitempty"`
	Field    string          `json:"field,omitempty"`
	InFlight bool            `json:"in_flight,omitempty"`
}
