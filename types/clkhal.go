package types

// ------------------------
// Clock HAL service state (retained)
// ------------------------

type ClkHALState struct {
	Level  string `json:"level"`  // "idle", "ready", "error", "stopped"
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`  // publish Unix ms
	Error  string `json:"error,omitempty"`
}

// ------------------------
// Per-clock state and events
// ------------------------

// ClockState is retained on "clkhal/clock/<id>/state".
type ClockState struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Enabled  bool   `json:"enabled"`
	TargetHz uint32 `json:"target_hz"`
	ActualHz uint32 `json:"actual_hz,omitempty"` // provider-confirmed, diagnostics only
	TS       int64  `json:"ts_ms"`
}

// ClockEvent is published (non-retained) on "clkhal/clock/<id>/event".
type ClockEvent struct {
	Event    string `json:"event"` // "enabled" or "disabled"
	ActualHz uint32 `json:"actual_hz,omitempty"`
	TS       int64  `json:"ts_ms"`
}

// ------------------------
// Generic replies
// ------------------------

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// StatusReply answers the "status" control verb.
type StatusReply struct {
	OK     bool         `json:"ok"`
	Level  string       `json:"level"`
	Clocks []ClockState `json:"clocks"`
}
